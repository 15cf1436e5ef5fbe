package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// personaRepo implements the persona repository
type personaRepo struct {
	db *sql.DB
}

// NewPersonaRepo creates a new persona repository
func NewPersonaRepo(db *sql.DB) repo.PersonaRepo {
	return &personaRepo{db: db}
}

// GetProfile returns the active profile, nil if none has been synthesized
func (r *personaRepo) GetProfile(ctx context.Context) (*domain.PersonaProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT version, summary, tone, quirks, sample_phrases, updated_at
		FROM persona_summary
		WHERE id = 1
	`)

	var (
		version       sql.NullString
		summary       sql.NullString
		tone          sql.NullString
		quirks        sql.NullString
		samplePhrases sql.NullString
		updatedAt     any
	)
	err := row.Scan(&version, &summary, &tone, &quirks, &samplePhrases, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query persona profile: %w", err)
	}

	profile := &domain.PersonaProfile{
		Version:   version.String,
		Summary:   summary.String,
		Tone:      tone.String,
		UpdatedAt: parseDBTime(updatedAt),
	}
	if quirks.Valid && quirks.String != "" {
		if err := json.Unmarshal([]byte(quirks.String), &profile.Quirks); err != nil {
			return nil, fmt.Errorf("failed to decode quirks: %w", err)
		}
	}
	if samplePhrases.Valid && samplePhrases.String != "" {
		if err := json.Unmarshal([]byte(samplePhrases.String), &profile.SamplePhrases); err != nil {
			return nil, fmt.Errorf("failed to decode sample phrases: %w", err)
		}
	}
	return profile, nil
}

// ReplaceProfile replaces the singleton profile wholesale. The single-row
// upsert means concurrent readers never observe a half-written profile.
func (r *personaRepo) ReplaceProfile(ctx context.Context, profile *domain.PersonaProfile) error {
	quirks, err := json.Marshal(profile.Quirks)
	if err != nil {
		return fmt.Errorf("failed to encode quirks: %w", err)
	}
	samplePhrases, err := json.Marshal(profile.SamplePhrases)
	if err != nil {
		return fmt.Errorf("failed to encode sample phrases: %w", err)
	}

	updatedAt := profile.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO persona_summary (id, version, summary, tone, quirks, sample_phrases, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`, profile.Version, profile.Summary, profile.Tone, string(quirks), string(samplePhrases), updatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to replace persona profile: %w", err)
	}
	return nil
}

// ListExamples returns all collected style examples in insertion order
func (r *personaRepo) ListExamples(ctx context.Context) ([]domain.PersonaExample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, example
		FROM persona
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persona examples: %w", err)
	}
	defer rows.Close()

	var examples []domain.PersonaExample
	for rows.Next() {
		var e domain.PersonaExample
		if err := rows.Scan(&e.ID, &e.Category, &e.Example); err != nil {
			return nil, fmt.Errorf("failed to scan persona example: %w", err)
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}
