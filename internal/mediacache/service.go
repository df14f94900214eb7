// Package mediacache is a content-addressed cache of the best known image
// for an outbound action URL. Entries are keyed by the sha256 of the
// normalized URL so arbitrarily long URLs stay indexable.
package mediacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultRetention is how long cache entries are kept before the sweeper
// removes them.
const DefaultRetention = 30 * 24 * time.Hour

// Service reads and writes the media cache table.
type Service struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates a media cache service.
func NewService(log *slog.Logger, pool *pgxpool.Pool) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		pool:   pool,
		logger: log.With(slog.String("service", "media_cache")),
	}
}

// Lookup returns the cached best image for an action URL, if present.
func (s *Service) Lookup(ctx context.Context, actionURL string) (string, bool, error) {
	var imageURL string
	err := s.pool.QueryRow(ctx,
		`SELECT image_url FROM media_cache WHERE url_hash = $1`,
		hashURL(actionURL),
	).Scan(&imageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("media cache lookup: %w", err)
	}
	return imageURL, strings.TrimSpace(imageURL) != "", nil
}

// Store records the resolved best image for an action URL, replacing any
// previous entry.
func (s *Service) Store(ctx context.Context, actionURL, imageURL string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO media_cache (url_hash, source_url, image_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (url_hash)
		 DO UPDATE SET image_url = EXCLUDED.image_url, created_at = now()`,
		hashURL(actionURL), strings.TrimSpace(actionURL), strings.TrimSpace(imageURL),
	)
	if err != nil {
		return fmt.Errorf("media cache store: %w", err)
	}
	return nil
}

// DeleteOlderThan removes entries past the given age and reports how many
// rows were deleted.
func (s *Service) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM media_cache WHERE created_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int64(age.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("media cache sweep: %w", err)
	}
	return tag.RowsAffected(), nil
}

func hashURL(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
