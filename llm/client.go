package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	replyMaxTokens     = 300
	synthesisMaxTokens = 1000
	requestTimeout     = 30 * time.Second
)

// Message is one role-tagged turn in a chat request
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Client is the language-model client using the OpenAI-compatible interface
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new language-model client. baseURL may point at any
// OpenAI-compatible endpoint; model falls back to a sensible default.
func NewClient(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Chat sends a reply-generation request: system prompt plus ordered turns,
// bounded output length. Replies are short by design; the system prompt
// already demands 1-3 sentences.
func (c *Client) Chat(ctx context.Context, systemPrompt string, turns []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: replyMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SynthesisSystemPrompt frames the batch persona-synthesis call
const SynthesisSystemPrompt = `You are analyzing text and flirting examples to build a dating communication profile. Be specific and analytical. Focus on what makes this person charming and attractive in conversation.`

// synthesisPromptTemplate wraps the collected examples; the model must
// return bare JSON with the exact fields the profile store expects
const synthesisPromptTemplate = `Analyze these text/flirting examples from one person and create a detailed communication profile optimized for dating conversations. Return a JSON object with these exact fields:
- summary: A paragraph describing how this person flirts and communicates with matches (writing style, personality, charm, humor style, energy)
- tone: A 2-4 word descriptor (e.g. "playful, confident wit")
- quirks: An array of 5-10 specific behavioral quirks relevant to dating convos (e.g. "teases with callbacks to earlier messages", "uses lowercase for casual confidence")
- sample_phrases: An array of 5-10 actual phrases or words this person uses when flirting or texting matches

Examples to analyze:
%s

Return ONLY valid JSON, no markdown.`

// Synthesize runs the one-shot persona synthesis over formatted examples
// and returns the raw model output for the caller to parse.
func (c *Client) Synthesize(ctx context.Context, examplesText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SynthesisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(synthesisPromptTemplate, examplesText)},
		},
		MaxTokens: synthesisMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("synthesis completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
