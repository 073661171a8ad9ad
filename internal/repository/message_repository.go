package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aaamo-store/internal/domain"
)

var (
	ErrMessageNotFound = errors.New("message not found")
)

// MessageRepository defines the interface for contact message data access
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// List returns messages newest first
	List(ctx context.Context) ([]*domain.Message, error)
	ToggleRead(ctx context.Context, id string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, name, email, subject, content, created_at, is_read`

func scanMessage(row rowScanner) (*domain.Message, error) {
	message := &domain.Message{}
	err := row.Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Content,
		&message.CreatedAt,
		&message.IsRead,
	)
	return message, err
}

// Create inserts a new message
func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Content,
		message.CreatedAt,
		message.IsRead,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// List retrieves all messages newest first
func (r *messageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// ToggleRead flips the read flag in place
func (r *messageRepository) ToggleRead(ctx context.Context, id string) (*domain.Message, error) {
	query := `UPDATE messages SET is_read = NOT is_read WHERE id = $1 RETURNING ` + messageColumns

	message, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to toggle message read status: %w", err)
	}

	return message, nil
}

// Delete removes a message
func (r *messageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return expectOneRow(result, ErrMessageNotFound)
}
