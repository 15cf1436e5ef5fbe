package imessage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// Mac CoreData epoch starts Jan 1, 2001; Unix epoch is Jan 1, 1970.
// chat.db stores dates as nanoseconds since the Mac epoch (macOS Sierra+).
const macEpochOffsetSec = 978307200

// chatStore implements the foreign message store repository over chat.db
type chatStore struct {
	db *sql.DB
}

// NewChatStore opens the Messages database read-only. An open failure is a
// configuration problem (usually a missing Full Disk Access grant), so it is
// reported immediately rather than retried.
func NewChatStore(dbPath string) (repo.ChatStoreRepo, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open chat.db: %w", err)
	}

	// sql.Open is lazy; probe now so a missing grant surfaces at startup
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open chat.db — grant Full Disk Access to this process in System Settings: %w", err)
	}

	return &chatStore{db: db}, nil
}

// FetchRecentInbound returns inbound messages newer than cutoff, ascending
// by store timestamp. Rows whose text column is NULL get their body decoded
// from the attributedBody blob; rows with no extractable text are dropped.
func (s *chatStore) FetchRecentInbound(ctx context.Context, cutoff time.Time) ([]*domain.InboundMessage, error) {
	cutoffMac := unixToMacNanos(cutoff)

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			m.guid           AS id,
			m.text           AS body,
			m.attributedBody AS attributed_body,
			h.id             AS handle,
			m.date           AS ts
		FROM message m
		JOIN handle h ON m.handle_id = h.rowid
		WHERE m.is_from_me = 0
		  AND (m.text IS NOT NULL OR m.attributedBody IS NOT NULL)
		  AND m.date > ?
		ORDER BY m.date ASC
	`, cutoffMac)
	if err != nil {
		return nil, fmt.Errorf("query chat.db: %w", err)
	}
	defer rows.Close()

	var messages []*domain.InboundMessage
	for rows.Next() {
		var (
			id     string
			body   sql.NullString
			blob   []byte
			handle string
			ts     int64
		)
		if err := rows.Scan(&id, &body, &blob, &handle, &ts); err != nil {
			return nil, fmt.Errorf("scan chat.db row: %w", err)
		}

		text := body.String
		if text == "" && len(blob) > 0 {
			text, _ = ExtractText(blob)
		}
		if text == "" {
			continue // an empty message is not actionable
		}

		messages = append(messages, &domain.InboundMessage{
			ID:        id,
			Handle:    handle,
			Body:      text,
			Timestamp: macNanosToTime(ts),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat.db rows: %w", err)
	}

	return messages, nil
}

// RecentContacts returns distinct handles ordered by most recent message
func (s *chatStore) RecentContacts(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT h.id AS handle
		FROM handle h
		JOIN message m ON m.handle_id = h.rowid
		ORDER BY m.date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent contacts: %w", err)
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var handle string
		if err := rows.Scan(&handle); err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		handles = append(handles, handle)
	}
	return handles, rows.Err()
}

// Close closes the database connection
func (s *chatStore) Close() error {
	return s.db.Close()
}

func unixToMacNanos(t time.Time) int64 {
	return (t.Unix() - macEpochOffsetSec) * 1e9
}

func macNanosToTime(ns int64) time.Time {
	return time.Unix(ns/1e9+macEpochOffsetSec, ns%1e9)
}
