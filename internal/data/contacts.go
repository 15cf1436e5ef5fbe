package data

import (
	"context"
	"database/sql"
	"fmt"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
)

// contactRepo implements the contact repository
type contactRepo struct {
	db *sql.DB
}

// NewContactRepo creates a new contact repository
func NewContactRepo(db *sql.DB) repo.ContactRepo {
	return &contactRepo{db: db}
}

// GetByHandle gets a contact by handle, nil if unknown
func (r *contactRepo) GetByHandle(ctx context.Context, handle string) (*domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, phone_or_handle, display_name, auto_reply, mode
		FROM contacts
		WHERE phone_or_handle = ?
	`, handle)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	return contact, nil
}

// ListAll lists all contacts ordered by display name
func (r *contactRepo) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, phone_or_handle, display_name, auto_reply, mode
		FROM contacts
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		contact     domain.Contact
		displayName sql.NullString
		autoReply   int
		mode        string
	)
	err := row.Scan(&contact.ID, &contact.Handle, &displayName, &autoReply, &mode)
	if err != nil {
		return nil, err
	}
	contact.DisplayName = displayName.String
	contact.AutoReply = autoReply != 0
	contact.Mode = domain.ReplyMode(mode)
	return &contact, nil
}
