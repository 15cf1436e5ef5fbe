package repo

import (
	"context"
	"time"

	"imessage-agent/internal/biz/domain"
)

// ChatStoreRepo is the foreign message store interface.
// Responsible for read-only queries against the Messages database; the
// caller owns the cutoff and advances it between ticks.
type ChatStoreRepo interface {
	// FetchRecentInbound returns inbound messages newer than cutoff, in
	// ascending arrival order. Rows with no extractable text are dropped.
	FetchRecentInbound(ctx context.Context, cutoff time.Time) ([]*domain.InboundMessage, error)

	// RecentContacts returns distinct handles seen recently, most recent first
	RecentContacts(ctx context.Context, limit int) ([]string, error)

	// Close closes the underlying store handle
	Close() error
}
