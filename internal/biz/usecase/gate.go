package usecase

import (
	"context"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// GateUsecase decides, per sender handle, whether to auto-respond
type GateUsecase struct {
	contactRepo repo.ContactRepo
}

// NewGateUsecase creates a new gate usecase
func NewGateUsecase(contactRepo repo.ContactRepo) *GateUsecase {
	return &GateUsecase{contactRepo: contactRepo}
}

// ShouldRespond reports whether a message from handle should get a reply.
// The settings snapshot comes from the current tick; the contact lookup is
// performed fresh for every message so allowlist changes take effect on the
// next tick.
func (uc *GateUsecase) ShouldRespond(ctx context.Context, settings domain.Settings, handle string) (bool, error) {
	if !settings.AgentEnabled() {
		return false, nil
	}
	if !settings.WarmupComplete() {
		return false, nil
	}

	contact, err := uc.contactRepo.GetByHandle(ctx, handle)
	if err != nil {
		return false, err
	}
	if contact == nil || !contact.AutoReply {
		return false, nil
	}

	switch contact.Mode {
	case domain.ReplyModeAlways:
		return true, nil
	default:
		// Unknown modes behave as "always" until defined
		return true, nil
	}
}
