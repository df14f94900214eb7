package healthcheck

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 2 * time.Second

// PostgresChecker reports connectivity of the backing Postgres pool.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a Postgres connectivity checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// ListChecks pings the pool with a short deadline.
func (c *PostgresChecker) ListChecks(ctx context.Context) []CheckResult {
	result := CheckResult{Component: "postgres", Status: StatusOK}
	if c == nil || c.pool == nil {
		result.Status = StatusError
		result.Detail = "pool not configured"
		return []CheckResult{result}
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.pool.Ping(pingCtx); err != nil {
		result.Status = StatusError
		result.Detail = err.Error()
	}
	return []CheckResult{result}
}
