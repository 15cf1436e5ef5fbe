package repo

import "context"

// SenderRepo is the platform send interface.
// Implementations carry their own timeout; a failed send is not retried.
type SenderRepo interface {
	Send(ctx context.Context, handle, body string) error
}
