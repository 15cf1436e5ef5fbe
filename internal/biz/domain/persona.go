package domain

import "time"

// PersonaProfile is the synthesized communication-style description.
// There is one active profile at a time; re-synthesis replaces it wholesale.
type PersonaProfile struct {
	Version       string // assigned on each synthesis, never reused
	Summary       string
	Tone          string
	Quirks        []string
	SamplePhrases []string
	UpdatedAt     time.Time
}

// PersonaExample is one collected style example used for synthesis
type PersonaExample struct {
	ID       int64
	Category string
	Example  string
}
