// AngelaMos | 2026
// repository.go

package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

// Repository scopes every query by owner. A note belonging to someone else
// is reported as not found.
type Repository interface {
	List(ctx context.Context, userID string) ([]Note, error)
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID string) ([]Note, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes WHERE user_id = $1
		ORDER BY updated_at DESC`

	var out []Note
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, n *Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, n *Note) error {
	if !core.ValidID(n.ID) {
		return fmt.Errorf("update note: %w", core.ErrNotFound)
	}

	query := `
		UPDATE notes
		SET title = $3, content = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update note: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	if !core.ValidID(id) {
		return fmt.Errorf("delete note: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete note: %w", core.ErrNotFound)
	}
	return nil
}
