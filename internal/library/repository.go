// AngelaMos | 2026
// repository.go

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	Create(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
}

const documentColumns = `
	id, type, title, description, content, file_url, file_name, file_key,
	date, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY date DESC`

	var docs []Document
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	if !core.ValidID(id) {
		return nil, fmt.Errorf("get document: %w", core.ErrNotFound)
	}

	var doc Document
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get document: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (r *repository) Create(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents (
			id, type, title, description, content, file_url, file_name, file_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING date, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		doc.ID,
		doc.Type,
		doc.Title,
		doc.Description,
		doc.Content,
		doc.FileURL,
		doc.FileName,
		doc.FileKey,
	).Scan(&doc.Date, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, doc *Document) error {
	query := `
		UPDATE documents
		SET type = $2, title = $3, description = $4, content = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &doc.UpdatedAt, query,
		doc.ID,
		doc.Type,
		doc.Title,
		doc.Description,
		doc.Content,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update document: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !core.ValidID(id) {
		return fmt.Errorf("delete document: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete document: %w", core.ErrNotFound)
	}
	return nil
}
