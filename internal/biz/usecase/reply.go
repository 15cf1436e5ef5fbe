package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// ReplyUsecase runs the per-message reply pipeline: build the prompt
// context, log the inbound turn, and call the generator.
type ReplyUsecase struct {
	promptUC      *PromptUsecase
	generatorRepo repo.GeneratorRepo
	turnRepo      repo.TurnLogRepo
}

// NewReplyUsecase creates a new reply usecase
func NewReplyUsecase(
	promptUC *PromptUsecase,
	generatorRepo repo.GeneratorRepo,
	turnRepo repo.TurnLogRepo,
) *ReplyUsecase {
	return &ReplyUsecase{
		promptUC:      promptUC,
		generatorRepo: generatorRepo,
		turnRepo:      turnRepo,
	}
}

// GenerateFor produces a reply for an inbound message. The history window is
// loaded before the inbound turn is logged so the incoming message appears
// exactly once in the prompt, as the final turn. Returns "" when the
// upstream call fails; the caller treats that as "no reply this time"
// rather than an error.
func (uc *ReplyUsecase) GenerateFor(ctx context.Context, msg *domain.InboundMessage) (string, error) {
	systemPrompt, turns, err := uc.promptUC.BuildContext(ctx, msg.Handle, msg.Body)
	if err != nil {
		return "", err
	}

	if err := uc.turnRepo.Append(ctx, &domain.ConversationTurn{
		Handle:    msg.Handle,
		Direction: domain.DirectionInbound,
		Body:      msg.Body,
		SentAt:    msg.Timestamp,
	}); err != nil {
		return "", fmt.Errorf("log inbound turn: %w", err)
	}

	reply, err := uc.generatorRepo.GenerateReply(ctx, systemPrompt, turns)
	if err != nil {
		fmt.Printf("[Reply] Generation failed for %s: %v\n", msg.Handle, err)
		return "", nil
	}

	return strings.TrimSpace(reply), nil
}

// OutboundTurn builds the log entry recorded after a successful send
func OutboundTurn(handle, body string) *domain.ConversationTurn {
	return &domain.ConversationTurn{
		Handle:        handle,
		Direction:     domain.DirectionOutbound,
		Body:          body,
		AutoGenerated: true,
		SentAt:        time.Now(),
	}
}
