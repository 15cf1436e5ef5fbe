package repo

import "context"

// PromptTurn is one role-tagged turn passed to the language model
type PromptTurn struct {
	Role    string // "user" or "assistant"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GeneratorRepo is the language-model service interface
type GeneratorRepo interface {
	// GenerateReply generates a reply for the given system prompt and turns
	GenerateReply(ctx context.Context, systemPrompt string, turns []PromptTurn) (string, error)

	// SynthesizeProfile performs the one-shot batch synthesis call over
	// accumulated style examples and returns the raw model output
	SynthesizeProfile(ctx context.Context, examplesText string) (string, error)
}
