package healthcheck

import "context"

// ProviderCounter reports the number of configured image search providers.
type ProviderCounter interface {
	ProviderCount() int
}

// ImagesChecker reports whether any image search provider is configured.
// Zero providers is degraded, not broken: resolution still succeeds via
// placeholders.
type ImagesChecker struct {
	resolver ProviderCounter
}

// NewImagesChecker creates an image provider checker.
func NewImagesChecker(resolver ProviderCounter) *ImagesChecker {
	return &ImagesChecker{resolver: resolver}
}

// ListChecks reports the provider configuration status.
func (c *ImagesChecker) ListChecks(_ context.Context) []CheckResult {
	result := CheckResult{Component: "images", Status: StatusOK}
	if c == nil || c.resolver == nil || c.resolver.ProviderCount() == 0 {
		result.Status = StatusWarn
		result.Detail = "no search providers configured, serving placeholders only"
	}
	return []CheckResult{result}
}
