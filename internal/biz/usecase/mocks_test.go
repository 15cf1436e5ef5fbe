package usecase

import (
	"context"
	"fmt"
	"sync"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// Mock implementations shared across the usecase tests

type mockContactRepo struct {
	contacts map[string]*domain.Contact
	err      error
}

func (m *mockContactRepo) GetByHandle(ctx context.Context, handle string) (*domain.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contacts[handle], nil
}

func (m *mockContactRepo) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	var result []*domain.Contact
	for _, c := range m.contacts {
		result = append(result, c)
	}
	return result, nil
}

type mockPersonaRepo struct {
	mu       sync.Mutex
	profile  *domain.PersonaProfile
	examples []domain.PersonaExample
}

func (m *mockPersonaRepo) GetProfile(ctx context.Context) (*domain.PersonaProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile, nil
}

func (m *mockPersonaRepo) ReplaceProfile(ctx context.Context, profile *domain.PersonaProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = profile
	return nil
}

func (m *mockPersonaRepo) ListExamples(ctx context.Context) ([]domain.PersonaExample, error) {
	return m.examples, nil
}

type mockTurnLogRepo struct {
	mu    sync.Mutex
	turns []domain.ConversationTurn
}

func (m *mockTurnLogRepo) Append(ctx context.Context, turn *domain.ConversationTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, *turn)
	return nil
}

// RecentByHandle returns the newest `limit` turns for handle, newest first,
// matching the SQL implementation's contract
func (m *mockTurnLogRepo) RecentByHandle(ctx context.Context, handle string, limit int) ([]domain.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []domain.ConversationTurn
	for i := len(m.turns) - 1; i >= 0 && len(result) < limit; i-- {
		if m.turns[i].Handle == handle {
			result = append(result, m.turns[i])
		}
	}
	return result, nil
}

type mockSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *mockSettingsRepo) Load(ctx context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(domain.Settings, len(m.values))
	for k, v := range m.values {
		snapshot[k] = v
	}
	return snapshot, nil
}

func (m *mockSettingsRepo) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

type mockGeneratorRepo struct {
	mu             sync.Mutex
	reply          string
	synthesized    string
	err            error
	lastSystem     string
	lastTurns      []repo.PromptTurn
	generateCalls  int
	synthesizeArgs string
}

func (m *mockGeneratorRepo) GenerateReply(ctx context.Context, systemPrompt string, turns []repo.PromptTurn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generateCalls++
	m.lastSystem = systemPrompt
	m.lastTurns = turns
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockGeneratorRepo) SynthesizeProfile(ctx context.Context, examplesText string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synthesizeArgs = examplesText
	if m.err != nil {
		return "", m.err
	}
	if m.synthesized == "" {
		return "", fmt.Errorf("no synthesized output configured")
	}
	return m.synthesized, nil
}
