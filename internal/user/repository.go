// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

const selectUser = `
	SELECT id, email, password_hash, name, phone, organization, category,
	       address, bio, profile_picture, role, registration_paid,
	       has_active_subscription, subscription_expires_at, trial_ends_at,
	       created_at, updated_at
	FROM users`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, name, phone, organization,
		                   category, role, trial_ends_at)
		VALUES (:id, :email, :password_hash, :name, :phone, :organization,
		        :category, :role, :trial_ends_at)
		RETURNING created_at, updated_at`

	if err := r.namedReturning(ctx, query, user, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return r.getOne(ctx, "get user", selectUser+` WHERE id = $1`, id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "get user by email", selectUser+` WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *repository) getOne(ctx context.Context, op, query string, arg any) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, query, arg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, core.MapSQLError(err))
	}
	return &u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	const query = `
		UPDATE users
		SET name = :name, phone = :phone, organization = :organization,
		    address = :address, bio = :bio, profile_picture = :profile_picture,
		    updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	if err := r.namedReturning(ctx, query, user, &user.UpdatedAt); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// namedReturning runs a named statement that returns exactly one row and
// scans it into dest. No row maps to core.ErrNotFound.
func (r *repository) namedReturning(ctx context.Context, query string, arg any, dest ...any) error {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, arg)
	if err != nil {
		return core.MapSQLError(err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return core.MapSQLError(err)
		}
		return core.ErrNotFound
	}
	return core.MapSQLError(rows.Scan(dest...))
}

// List pages through ordinary accounts, newest first. Search matches email,
// name and organization case-insensitively.
func (r *repository) List(ctx context.Context, params ListUsersParams) ([]User, int, error) {
	params.Normalize()

	var w where
	w.add("role = 'user'")
	if params.Search != "" {
		p := w.arg("%" + likeEscaper.Replace(params.Search) + "%")
		w.add("(email ILIKE " + p + " OR name ILIKE " + p + " OR organization ILIKE " + p + ")")
	}
	if params.Category != "" {
		w.add("category = " + w.arg(params.Category))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := selectUser + w.sql() +
		` ORDER BY created_at DESC LIMIT ` + w.arg(params.PageSize) + ` OFFSET ` + w.arg(params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where accumulates AND-ed conditions with positional placeholders.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string) { w.conds = append(w.conds, cond) }

func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
