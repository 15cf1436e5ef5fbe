package repo

import (
	"context"

	"imessage-agent/internal/biz/domain"
)

// PersonaRepo is the persona profile and example store interface
type PersonaRepo interface {
	// GetProfile returns the active profile, or nil if none has been synthesized
	GetProfile(ctx context.Context) (*domain.PersonaProfile, error)

	// ReplaceProfile replaces the singleton profile wholesale
	ReplaceProfile(ctx context.Context, profile *domain.PersonaProfile) error

	// ListExamples returns all collected style examples in insertion order
	ListExamples(ctx context.Context) ([]domain.PersonaExample, error)
}
