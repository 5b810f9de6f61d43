// AngelaMos | 2026
// repository.go

package consultancy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Case, error)
	ListByUser(ctx context.Context, userID string) ([]Case, error)
	GetByID(ctx context.Context, id string) (*Case, error)
	Create(ctx context.Context, c *Case) error
	Update(ctx context.Context, c *Case) error
}

const caseColumns = `
	id, user_id, user_name, user_email, issue, document_url, document_name,
	document_key, status, solution, fee, is_paid, date, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY date DESC`

	var cases []Case
	if err := r.db.SelectContext(ctx, &cases, query); err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return cases, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE user_id = $1 ORDER BY date DESC`

	var cases []Case
	if err := r.db.SelectContext(ctx, &cases, query, userID); err != nil {
		return nil, fmt.Errorf("list user cases: %w", err)
	}
	return cases, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Case, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("get case: %w", core.ErrNotFound)
	}

	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

	var c Case
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get case: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Case) error {
	query := `
		INSERT INTO cases (
			id, user_id, user_name, user_email, issue, document_url,
			document_name, document_key, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING date, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.UserID,
		c.UserName,
		c.UserEmail,
		c.Issue,
		c.DocumentURL,
		c.DocumentName,
		c.DocumentKey,
		c.Status,
	).Scan(&c.Date, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, c *Case) error {
	query := `
		UPDATE cases
		SET status = $2, solution = $3, fee = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query, c.ID, c.Status, c.Solution, c.Fee)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update case: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	return nil
}
