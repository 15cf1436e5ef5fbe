package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// Timestamps are stored as RFC 3339 UTC strings with a fixed-width
// fractional second so lexicographic and chronological ordering agree
// regardless of which process wrote the row.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// turnLogRepo implements the conversation log repository
type turnLogRepo struct {
	db *sql.DB
}

// NewTurnLogRepo creates a new conversation log repository
func NewTurnLogRepo(db *sql.DB) repo.TurnLogRepo {
	return &turnLogRepo{db: db}
}

// Append appends a turn to the log
func (r *turnLogRepo) Append(ctx context.Context, turn *domain.ConversationTurn) error {
	sentAt := turn.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	autoGenerated := 0
	if turn.AutoGenerated {
		autoGenerated = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO message_log (phone_or_handle, direction, body, auto_generated, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`, turn.Handle, string(turn.Direction), turn.Body, autoGenerated, sentAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// RecentByHandle returns up to limit turns for a handle, newest first
func (r *turnLogRepo) RecentByHandle(ctx context.Context, handle string, limit int) ([]domain.ConversationTurn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, phone_or_handle, direction, body, auto_generated, sent_at
		FROM message_log
		WHERE phone_or_handle = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT ?
	`, handle, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.ConversationTurn
	for rows.Next() {
		var (
			turn          domain.ConversationTurn
			direction     string
			autoGenerated int
			sentAt        any
		)
		if err := rows.Scan(&turn.ID, &turn.Handle, &direction, &turn.Body, &autoGenerated, &sentAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.Direction = domain.Direction(direction)
		turn.AutoGenerated = autoGenerated != 0
		turn.SentAt = parseDBTime(sentAt)
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// parseDBTime tolerates the driver returning either time.Time or the stored
// text for DATETIME columns.
func parseDBTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case string:
		if t, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02 15:04:05", val); err == nil {
			return t
		}
	case []byte:
		return parseDBTime(string(val))
	}
	return time.Time{}
}
