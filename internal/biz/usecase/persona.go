package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// PersonaUsecase handles persona synthesis from collected style examples
type PersonaUsecase struct {
	personaRepo   repo.PersonaRepo
	settingsRepo  repo.SettingsRepo
	generatorRepo repo.GeneratorRepo
}

// NewPersonaUsecase creates a new persona usecase
func NewPersonaUsecase(
	personaRepo repo.PersonaRepo,
	settingsRepo repo.SettingsRepo,
	generatorRepo repo.GeneratorRepo,
) *PersonaUsecase {
	return &PersonaUsecase{
		personaRepo:   personaRepo,
		settingsRepo:  settingsRepo,
		generatorRepo: generatorRepo,
	}
}

// SynthesizedProfile is the JSON shape the model is asked to return
type SynthesizedProfile struct {
	Summary       string   `json:"summary"`
	Tone          string   `json:"tone"`
	Quirks        []string `json:"quirks"`
	SamplePhrases []string `json:"sample_phrases"`
}

// Synthesize runs the one-shot batch synthesis over all collected examples
// and replaces the active profile on success. Malformed model output fails
// the call without writing partial data.
func (uc *PersonaUsecase) Synthesize(ctx context.Context) (*domain.PersonaProfile, error) {
	examples, err := uc.personaRepo.ListExamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persona examples: %w", err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no examples to synthesize")
	}

	var sb strings.Builder
	for i, e := range examples {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s]: %q", e.Category, e.Example))
	}

	raw, err := uc.generatorRepo.SynthesizeProfile(ctx, sb.String())
	if err != nil {
		return nil, fmt.Errorf("synthesis call: %w", err)
	}

	parsed, err := ParseProfileJSON(raw)
	if err != nil {
		return nil, err
	}

	profile := &domain.PersonaProfile{
		Version:       uuid.NewString(),
		Summary:       parsed.Summary,
		Tone:          parsed.Tone,
		Quirks:        parsed.Quirks,
		SamplePhrases: parsed.SamplePhrases,
		UpdatedAt:     time.Now(),
	}

	if err := uc.personaRepo.ReplaceProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("replace profile: %w", err)
	}

	if err := uc.settingsRepo.Set(ctx, domain.SettingWarmupComplete, "1"); err != nil {
		fmt.Printf("[Persona] Failed to mark warmup complete: %v\n", err)
	}

	fmt.Printf("[Persona] Synthesized profile %s from %d examples\n", profile.Version, len(examples))
	return profile, nil
}

// ParseProfileJSON parses model output into a profile shape, tolerating
// markdown code-fence wrapping around the JSON.
func ParseProfileJSON(raw string) (*SynthesizedProfile, error) {
	text := StripCodeFence(raw)

	var parsed SynthesizedProfile
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse profile JSON: %w", err)
	}
	if parsed.Summary == "" {
		return nil, fmt.Errorf("parse profile JSON: missing summary")
	}
	return &parsed, nil
}

// StripCodeFence removes a surrounding triple-backtick fence, with or
// without a language tag, leaving other text untouched.
func StripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
