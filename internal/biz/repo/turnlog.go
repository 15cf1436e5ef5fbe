package repo

import (
	"context"

	"imessage-agent/internal/biz/domain"
)

// TurnLogRepo is the conversation log interface.
// The log is append-only; ordering by sent_at defines conversation history.
type TurnLogRepo interface {
	// Append appends a turn to the log
	Append(ctx context.Context, turn *domain.ConversationTurn) error

	// RecentByHandle returns up to limit turns for a handle, newest first
	RecentByHandle(ctx context.Context, handle string, limit int) ([]domain.ConversationTurn, error)
}
