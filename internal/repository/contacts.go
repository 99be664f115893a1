package repository

import (
	"context"
	"fmt"
	"time"

	"clubsite/backend/internal/models"

	"github.com/rs/zerolog/log"
)

// ContactRepository handles contact form messages
type ContactRepository struct {
	db *Database
}

// Create stores a new message
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) (err error) {
	start := time.Now()
	defer func() { observe("insert", "contact_messages", start, err) }()

	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Read, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	log.Info().
		Str("id", m.ID).
		Str("email", m.Email).
		Msg("Contact message received")

	return nil
}

// List returns all messages newest first
func (r *ContactRepository) List(ctx context.Context) (_ []*models.ContactMessage, err error) {
	start := time.Now()
	defer func() { observe("select", "contact_messages", start, err) }()

	query := `
		SELECT id, name, email, subject, message, read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}

// MarkRead flags a message as read
func (r *ContactRepository) MarkRead(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("update", "contact_messages", start, err) }()

	tag, err := r.db.Pool.Exec(ctx, `UPDATE contact_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNotFound)
	}

	return nil
}

// Delete removes a message
func (r *ContactRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "contact_messages", start, err) }()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNotFound)
	}

	return nil
}
