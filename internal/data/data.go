package data

import (
	"database/sql"

	"imessage-agent/internal/biz/repo"
	"imessage-agent/llm"
)

// Repositories contains all repositories backed by the agent database
type Repositories struct {
	Settings  repo.SettingsRepo
	Contacts  repo.ContactRepo
	Persona   repo.PersonaRepo
	TurnLog   repo.TurnLogRepo
	Ledger    repo.LedgerRepo
	Generator repo.GeneratorRepo

	db *sql.DB
}

// NewRepositories opens the agent database and creates all repositories
func NewRepositories(agentDBPath string, llmClient *llm.Client) (*Repositories, error) {
	db, err := NewAgentDB(agentDBPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Settings:  NewSettingsRepo(db),
		Contacts:  NewContactRepo(db),
		Persona:   NewPersonaRepo(db),
		TurnLog:   NewTurnLogRepo(db),
		Ledger:    NewLedgerRepo(db),
		Generator: NewGeneratorRepo(llmClient),
		db:        db,
	}, nil
}

// Close closes the underlying database
func (r *Repositories) Close() error {
	return r.db.Close()
}
