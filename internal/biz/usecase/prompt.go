package usecase

import (
	"context"
	"fmt"
	"strings"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// HistoryWindow is the number of prior turns included in the prompt.
// Bounding the window keeps prompt cost flat regardless of conversation length.
const HistoryWindow = 10

// BasePrompt is the fixed behavioral contract for generated replies
const BasePrompt = `You are an AI assistant helping someone respond to their dating matches over iMessage. Your job is to reply as if you ARE that person — not as an AI, not as an assistant. Never reveal you are an AI.

CONTEXT: These are conversations with people from dating apps (Hinge, Tinder, Bumble, etc.) who have moved to texting. The goal is to be charming, keep the conversation flowing, and build toward meeting up in person.

CRITICAL RULES:
- Reply naturally and casually, like a real text message
- Keep replies SHORT — 1-3 sentences max. Nobody likes a wall of text from a match
- Be flirty but not desperate or cringe. Confidence > eagerness
- Tease playfully — light banter and wit go a long way
- Ask questions that keep the conversation going, but don't interrogate
- Match their energy: if they're giving short replies, don't overdo it. If they're engaged, lean in
- Never use formal language, bullet points, or structured responses
- Don't be overly enthusiastic or use too many exclamation marks
- If they ask something you can't answer (specific personal details you don't know), deflect smoothly — e.g. "haha that's a whole story, better saved for when we hang"
- Use lowercase when appropriate to match casual texting style
- Don't double text or seem needy
- Steer toward making plans when the vibe is right — suggest something specific, not "we should hang sometime"
- If they're being flirty, flirt back. If they're being witty, match the wit
- Never be generic or boring. No "how was your day" unless you make it interesting`

// PromptUsecase assembles the persona-conditioned prompt and history window
type PromptUsecase struct {
	personaRepo repo.PersonaRepo
	turnRepo    repo.TurnLogRepo
}

// NewPromptUsecase creates a new prompt usecase
func NewPromptUsecase(personaRepo repo.PersonaRepo, turnRepo repo.TurnLogRepo) *PromptUsecase {
	return &PromptUsecase{personaRepo: personaRepo, turnRepo: turnRepo}
}

// BuildContext builds the system prompt and the ordered turn list for a new
// incoming message. Turns are oldest-first with the incoming message last.
func (uc *PromptUsecase) BuildContext(ctx context.Context, handle, incomingBody string) (string, []repo.PromptTurn, error) {
	profile, err := uc.personaRepo.GetProfile(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load persona profile: %w", err)
	}

	systemPrompt := uc.buildSystemPrompt(profile)

	history, err := uc.turnRepo.RecentByHandle(ctx, handle, HistoryWindow)
	if err != nil {
		return "", nil, fmt.Errorf("load conversation history: %w", err)
	}

	// RecentByHandle returns newest-first; the model wants oldest-first
	turns := make([]repo.PromptTurn, 0, len(history)+1)
	for i := len(history) - 1; i >= 0; i-- {
		turns = append(turns, repo.PromptTurn{
			Role:    roleFor(&history[i]),
			Content: history[i].Body,
		})
	}
	turns = append(turns, repo.PromptTurn{Role: repo.RoleUser, Content: incomingBody})

	return systemPrompt, turns, nil
}

func roleFor(t *domain.ConversationTurn) string {
	if t.IsInbound() {
		return repo.RoleUser
	}
	return repo.RoleAssistant
}

// buildSystemPrompt appends the persona section to the base prompt.
// Without a profile the prompt falls back to a generic style directive.
func (uc *PromptUsecase) buildSystemPrompt(profile *domain.PersonaProfile) string {
	if profile == nil || profile.Summary == "" {
		return BasePrompt + "\n\nBe casual, charming, and witty."
	}

	var sb strings.Builder
	sb.WriteString(BasePrompt)
	sb.WriteString("\n\nPERSONA PROFILE (this is how the person you're impersonating communicates):\n")
	sb.WriteString(profile.Summary)

	tone := profile.Tone
	if tone == "" {
		tone = "casual"
	}
	sb.WriteString("\n\nTone: ")
	sb.WriteString(tone)

	sb.WriteString("\n\nSpecific quirks to emulate:\n")
	if len(profile.Quirks) == 0 {
		sb.WriteString("- Be natural\n")
	} else {
		for _, q := range profile.Quirks {
			sb.WriteString(fmt.Sprintf("- %s\n", q))
		}
	}

	sb.WriteString("\nSample phrases this person actually uses:\n")
	for _, p := range profile.SamplePhrases {
		sb.WriteString(fmt.Sprintf("- %q\n", p))
	}

	sb.WriteString("\nIMPORTANT: Use these quirks and phrases naturally — don't force them into every message, just let them show up organically.")
	return sb.String()
}
