package repo

import "context"

// LedgerRepo is the dedup ledger interface.
// The insert is the serialization point for at-most-once handling.
type LedgerRepo interface {
	// MarkIfNew atomically records the message id and reports whether it
	// was newly inserted (true) or already present (false).
	MarkIfNew(ctx context.Context, messageID string) (bool, error)
}
