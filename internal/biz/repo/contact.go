package repo

import (
	"context"

	"imessage-agent/internal/biz/domain"
)

// ContactRepo is the allowlist read surface.
// The contacts table is owned by the dashboard; the daemon only reads it.
type ContactRepo interface {
	// GetByHandle returns the contact for a handle, or nil if unknown
	GetByHandle(ctx context.Context, handle string) (*domain.Contact, error)

	// ListAll returns all contacts ordered by display name
	ListAll(ctx context.Context) ([]*domain.Contact, error)
}
