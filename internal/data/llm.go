package data

import (
	"context"

	"imessage-agent/internal/biz/repo"
	"imessage-agent/llm"
)

// llmRepo implements the generator repository over the LLM client
type llmRepo struct {
	client *llm.Client
}

// NewGeneratorRepo creates a generator repository
func NewGeneratorRepo(client *llm.Client) repo.GeneratorRepo {
	if client == nil {
		return nil
	}
	return &llmRepo{client: client}
}

// GenerateReply generates a reply for the given system prompt and turns
func (r *llmRepo) GenerateReply(ctx context.Context, systemPrompt string, turns []repo.PromptTurn) (string, error) {
	messages := make([]llm.Message, len(turns))
	for i, t := range turns {
		messages[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return r.client.Chat(ctx, systemPrompt, messages)
}

// SynthesizeProfile runs the batch synthesis call
func (r *llmRepo) SynthesizeProfile(ctx context.Context, examplesText string) (string, error) {
	return r.client.Synthesize(ctx, examplesText)
}
