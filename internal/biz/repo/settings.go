package repo

import (
	"context"

	"imessage-agent/internal/biz/domain"
)

// SettingsRepo is the settings table interface
type SettingsRepo interface {
	// Load returns a snapshot of all settings
	Load(ctx context.Context) (domain.Settings, error)

	// Set upserts a single key
	Set(ctx context.Context, key, value string) error
}
