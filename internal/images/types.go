package images

import "context"

// SearchClient resolves a free-text query to a representative photo URL.
// A nil error with an empty URL means the provider had no usable result.
type SearchClient interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

// Cache looks up a previously resolved best image for an action URL.
type Cache interface {
	Lookup(ctx context.Context, actionURL string) (string, bool, error)
}

// CacheWriter records a resolved best image for an action URL so later
// lookups can skip the provider cascade.
type CacheWriter interface {
	Store(ctx context.Context, actionURL, imageURL string) error
}
