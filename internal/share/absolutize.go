package share

import (
	"net/url"
	"strings"
)

// Absolutizer rewrites relative URLs against a configured public base URL so
// link-preview consumers always receive absolute references.
type Absolutizer struct {
	base *url.URL
}

// Preview is the link-preview metadata for one shared card.
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	TargetURL   string `json:"target_url"`
}

// NewAbsolutizer creates an absolutizer for the given public base URL. An
// empty or unparseable base yields a no-op absolutizer.
func NewAbsolutizer(baseURL string) *Absolutizer {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return &Absolutizer{}
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return &Absolutizer{}
	}
	return &Absolutizer{base: parsed}
}

// Absolutize resolves raw against the public base URL. Already-absolute URLs
// and unparseable input pass through unchanged, as does everything when no
// base is configured.
func (a *Absolutizer) Absolutize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if a == nil || a.base == nil || trimmed == "" {
		return trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if parsed.IsAbs() {
		return trimmed
	}
	return a.base.ResolveReference(parsed).String()
}

// Preview builds link-preview metadata for a resolved target, absolutizing
// its image and target URLs.
func (a *Absolutizer) Preview(target Target) Preview {
	return Preview{
		Title:       target.Card.Title,
		Description: target.Card.Subtitle,
		ImageURL:    a.Absolutize(target.Card.ImageURL),
		TargetURL:   a.Absolutize(target.TargetURL),
	}
}
