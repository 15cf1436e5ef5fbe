package domain

import "time"

// ReplyMode represents a per-contact reply strategy
type ReplyMode string

const (
	// ReplyModeAlways replies to every allowlisted message.
	// Additional modes may be added without changing the gate contract.
	ReplyModeAlways ReplyMode = "always"
)

// Contact represents an allowlisted conversation partner
type Contact struct {
	ID          int64
	Handle      string
	DisplayName string
	AutoReply   bool
	Mode        ReplyMode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
