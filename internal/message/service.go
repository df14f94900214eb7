package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBService persists and reads conversation messages.
type DBService struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates a message service.
func NewService(log *slog.Logger, pool *pgxpool.Pool) *DBService {
	if log == nil {
		log = slog.Default()
	}
	return &DBService{
		pool:   pool,
		logger: log.With(slog.String("service", "message")),
	}
}

// Persist writes a single message and returns the stored row.
func (s *DBService) Persist(ctx context.Context, input PersistInput) (Message, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = RoleAssistant
	}
	content := input.Content
	if len(content) == 0 {
		content = []byte("{}")
	}

	var msg Message
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, role, content, created_at`,
		uuid.NewString(), role, content,
	).Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// Get returns a message by ID. Malformed and unknown IDs both map to
// ErrMessageNotFound.
func (s *DBService) Get(ctx context.Context, id string) (Message, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Message{}, ErrMessageNotFound
	}
	var msg Message
	err = s.pool.QueryRow(ctx,
		`SELECT id, role, content, created_at FROM messages WHERE id = $1`,
		parsed.String(),
	).Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, ErrMessageNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}
