package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"imessage-agent/internal/biz/repo"
)

// ledgerRepo implements the dedup ledger repository
type ledgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a new dedup ledger repository
func NewLedgerRepo(db *sql.DB) repo.LedgerRepo {
	return &ledgerRepo{db: db}
}

// MarkIfNew inserts the message id and reports whether it was newly
// inserted. The primary-key constraint makes the insert the serialization
// point; overlapping poll ticks cannot both claim the same id.
func (r *ledgerRepo) MarkIfNew(ctx context.Context, messageID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO seen_messages (message_id, processed_at)
		VALUES (?, ?)
	`, messageID, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return false, fmt.Errorf("failed to mark message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}
