package message

import (
	"context"
	"encoding/json"
	"time"
)

// Role values for stored messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single persisted conversation message. For assistant rows
// Content holds the canonical AssistantMessage JSON.
type Message struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// PersistInput is the input for persisting a message.
type PersistInput struct {
	Role    string
	Content json.RawMessage
}

// Service defines message read/write behavior.
type Service interface {
	Persist(ctx context.Context, input PersistInput) (Message, error)
	Get(ctx context.Context, id string) (Message, error)
}
