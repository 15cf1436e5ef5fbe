package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

func TestBuildContextPersonaVerbatim(t *testing.T) {
	personaRepo := &mockPersonaRepo{profile: &domain.PersonaProfile{
		Summary:       "keeps it short and teasing",
		Tone:          "dry, playful",
		Quirks:        []string{"ends messages with 'lol'"},
		SamplePhrases: []string{"no shot"},
	}}
	uc := NewPromptUsecase(personaRepo, &mockTurnLogRepo{})

	systemPrompt, _, err := uc.BuildContext(context.Background(), "+15551234567", "hey")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}

	for _, want := range []string{
		"dry, playful",
		"ends messages with 'lol'",
		"keeps it short and teasing",
		`"no shot"`,
		"organically",
	} {
		if !strings.Contains(systemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildContextNoProfileFallback(t *testing.T) {
	uc := NewPromptUsecase(&mockPersonaRepo{}, &mockTurnLogRepo{})

	systemPrompt, _, err := uc.BuildContext(context.Background(), "+15551234567", "hey")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}
	if !strings.Contains(systemPrompt, "Be casual, charming, and witty.") {
		t.Error("expected generic style fallback without a profile")
	}
	if strings.Contains(systemPrompt, "PERSONA PROFILE") {
		t.Error("persona section must be absent without a profile")
	}
}

func TestBuildContextHistoryWindow(t *testing.T) {
	turnRepo := &mockTurnLogRepo{}
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 12; i++ {
		direction := domain.DirectionInbound
		if i%2 == 0 {
			direction = domain.DirectionOutbound
		}
		turnRepo.turns = append(turnRepo.turns, domain.ConversationTurn{
			Handle:    "+15551234567",
			Direction: direction,
			Body:      fmt.Sprintf("turn-%d", i),
			SentAt:    base.Add(time.Duration(i) * time.Minute),
		})
	}

	uc := NewPromptUsecase(&mockPersonaRepo{}, turnRepo)

	_, turns, err := uc.BuildContext(context.Background(), "+15551234567", "what's new")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}

	// Latest 10 of the 12 prior turns plus the incoming message, oldest first
	if len(turns) != HistoryWindow+1 {
		t.Fatalf("expected %d turns, got %d", HistoryWindow+1, len(turns))
	}
	if turns[0].Content != "turn-3" {
		t.Errorf("expected window to start at turn-3, got %q", turns[0].Content)
	}
	if turns[9].Content != "turn-12" {
		t.Errorf("expected newest history turn last, got %q", turns[9].Content)
	}
	if turns[10].Content != "what's new" || turns[10].Role != repo.RoleUser {
		t.Errorf("expected incoming message as final user turn, got %+v", turns[10])
	}

	// Direction mapping: inbound -> user, outbound -> assistant
	if turns[0].Role != repo.RoleUser { // turn-3 is inbound
		t.Errorf("inbound turn mapped to %q", turns[0].Role)
	}
	if turns[1].Role != repo.RoleAssistant { // turn-4 is outbound
		t.Errorf("outbound turn mapped to %q", turns[1].Role)
	}
}

func TestBuildContextNoHistory(t *testing.T) {
	uc := NewPromptUsecase(&mockPersonaRepo{}, &mockTurnLogRepo{})

	_, turns, err := uc.BuildContext(context.Background(), "+15551234567", "hi there")
	if err != nil {
		t.Fatalf("build context: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected only the incoming turn, got %d", len(turns))
	}
	if turns[0].Content != "hi there" {
		t.Errorf("unexpected turn content %q", turns[0].Content)
	}
}
