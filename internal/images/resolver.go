package images

import (
	"context"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/waypointhq/waypoint/internal/blocks"
	"github.com/waypointhq/waypoint/internal/reply"
)

// DefaultMemoSize bounds the in-process query memoization cache.
const DefaultMemoSize = 256

// Resolver resolves a photographic URL for a raw option through an ordered
// cascade: external media cache by action URL, then each configured search
// provider, then a deterministic placeholder.
type Resolver struct {
	cache     Cache
	writer    CacheWriter
	providers []SearchClient
	memo      *lru.Cache[string, string]
	logger    *slog.Logger
}

// NewResolver creates an image resolver. cache and writer may be nil;
// providers may be empty, in which case every resolution lands on the
// placeholder.
func NewResolver(log *slog.Logger, cache Cache, writer CacheWriter, providers []SearchClient, memoSize int) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if memoSize <= 0 {
		memoSize = DefaultMemoSize
	}
	memo, _ := lru.New[string, string](memoSize)
	return &Resolver{
		cache:     cache,
		writer:    writer,
		providers: providers,
		memo:      memo,
		logger:    log.With(slog.String("service", "images")),
	}
}

// Resolve returns a usable absolute image URL for the option. It is total:
// cache misses and provider failures fall through the cascade and the
// placeholder step cannot fail. Provider errors are logged, never returned.
func (r *Resolver) Resolve(ctx context.Context, option reply.RawOption) string {
	action := strings.TrimSpace(option.ActionURL)
	if action != "" && r.cache != nil {
		imageURL, found, err := r.cache.Lookup(ctx, action)
		if err != nil {
			r.logger.Warn("media cache lookup failed", slog.String("action_url", action), slog.Any("error", err))
		} else if found && blocks.IsAbsoluteHTTPURL(imageURL) {
			return imageURL
		}
	}

	query := SearchQuery(option)
	if cached, ok := r.memo.Get(query); ok {
		return cached
	}
	for _, provider := range r.providers {
		imageURL, err := provider.SearchImage(ctx, query)
		if err != nil {
			// Timeouts and failures are "no answer"; the next tier is
			// the retry strategy.
			r.logger.Debug("image search failed", slog.String("query", query), slog.Any("error", err))
			continue
		}
		if blocks.IsAbsoluteHTTPURL(imageURL) {
			r.memo.Add(query, imageURL)
			if action != "" && r.writer != nil {
				if err := r.writer.Store(ctx, action, imageURL); err != nil {
					r.logger.Debug("media cache store failed", slog.String("action_url", action), slog.Any("error", err))
				}
			}
			return imageURL
		}
	}
	return PlaceholderURL(query)
}

// ProviderCount reports how many search providers the cascade consults.
func (r *Resolver) ProviderCount() int {
	if r == nil {
		return 0
	}
	return len(r.providers)
}

// SearchQuery builds the provider query for an option: "{category} {title}",
// trimmed.
func SearchQuery(option reply.RawOption) string {
	return strings.TrimSpace(strings.TrimSpace(option.Category) + " " + strings.TrimSpace(option.Title))
}
