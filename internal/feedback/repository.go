// AngelaMos | 2026
// repository.go

package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Repository interface {
	ListFeedback(ctx context.Context) ([]Feedback, error)
	CreateFeedback(ctx context.Context, f *Feedback) error
	ListMessages(ctx context.Context) ([]ContactMessage, error)
	CreateMessage(ctx context.Context, m *ContactMessage) error
	// Reply stores the first reply only. A message that already has one
	// reports core.ErrConflict.
	Reply(ctx context.Context, id, reply string) (*ContactMessage, error)
}

const messageColumns = `id, name, email, message, reply, replied_at, date`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListFeedback(ctx context.Context) ([]Feedback, error) {
	query := `
		SELECT id, user_name, user_email, feedback_text, date
		FROM feedback ORDER BY date DESC`

	var out []Feedback
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

func (r *repository) CreateFeedback(ctx context.Context, f *Feedback) error {
	query := `
		INSERT INTO feedback (id, user_name, user_email, feedback_text)
		VALUES ($1, $2, $3, $4)
		RETURNING date`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID, f.UserName, f.UserEmail, f.FeedbackText,
	).Scan(&f.Date)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *repository) ListMessages(ctx context.Context) ([]ContactMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages ORDER BY date DESC`

	var out []ContactMessage
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return out, nil
}

func (r *repository) CreateMessage(ctx context.Context, m *ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING date`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID, m.Name, m.Email, m.Message,
	).Scan(&m.Date)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *repository) Reply(ctx context.Context, id, reply string) (*ContactMessage, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("reply: %w", core.ErrNotFound)
	}

	query := `
		UPDATE contact_messages
		SET reply = $2, replied_at = NOW()
		WHERE id = $1 AND reply = ''
		RETURNING ` + messageColumns

	var m ContactMessage
	err := r.db.GetContext(ctx, &m, query, id, reply)
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reply: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM contact_messages WHERE id = $1)`, id,
	); err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("reply: %w", core.ErrConflict)
	}
	return nil, fmt.Errorf("reply: %w", core.ErrNotFound)
}
