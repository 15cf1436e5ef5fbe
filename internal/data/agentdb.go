package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// NewAgentDB opens (creating if needed) the agent's own database and ensures
// the schema exists. The daemon may start before the dashboard, so schema
// creation lives here. Contacts, persona examples, and settings are written
// by the dashboard; the daemon reads them and appends to message_log and
// seen_messages only.
func NewAgentDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phone_or_handle TEXT UNIQUE NOT NULL,
			display_name TEXT,
			auto_reply INTEGER DEFAULT 0,
			mode TEXT DEFAULT 'always',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS persona (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			example TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS persona_summary (
			id INTEGER PRIMARY KEY DEFAULT 1,
			version TEXT,
			summary TEXT,
			tone TEXT,
			quirks TEXT,
			sample_phrases TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS message_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phone_or_handle TEXT NOT NULL,
			direction TEXT NOT NULL,
			body TEXT NOT NULL,
			auto_generated INTEGER DEFAULT 0,
			sent_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS seen_messages (
			message_id TEXT PRIMARY KEY,
			processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_message_log_handle_sent ON message_log(phone_or_handle, sent_at)`)

	// Migration for databases created before profile versioning
	_, _ = db.Exec(`ALTER TABLE persona_summary ADD COLUMN version TEXT`)

	seeds := map[string]string{
		"agent_enabled":      "0",
		"warmup_complete":    "0",
		"reply_delay_min_ms": "2000",
		"reply_delay_max_ms": "8000",
	}
	for key, value := range seeds {
		if _, err := db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	fmt.Println("[Data] Agent database initialized")
	return db, nil
}
