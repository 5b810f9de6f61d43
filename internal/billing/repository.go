// AngelaMos | 2026
// repository.go

package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

type Repository interface {
	// Settle records p and applies its effect atomically. A payment whose
	// order was already recorded is reported as AlreadyApplied and changes
	// nothing.
	Settle(ctx context.Context, p *Payment, subscriptionPeriod time.Duration) (Settlement, error)
	FindByOrder(ctx context.Context, orderID string) (*Payment, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Settle(
	ctx context.Context,
	p *Payment,
	subscriptionPeriod time.Duration,
) (Settlement, error) {
	var out Settlement

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		inserted, err := insertPayment(ctx, tx, p)
		if err != nil {
			return err
		}
		if !inserted {
			out.AlreadyApplied = true
			return nil
		}

		switch p.Purpose {
		case PurposeRegistration:
			return execOne(ctx, tx, "mark registration paid", `
				UPDATE users
				SET registration_paid = TRUE, updated_at = NOW()
				WHERE id = $1`, p.UserID)

		case PurposeCase:
			return execOne(ctx, tx, "mark case paid", `
				UPDATE cases
				SET is_paid = TRUE, status = 'COMPLETED', updated_at = NOW()
				WHERE id = $1 AND user_id = $2 AND is_paid = FALSE`,
				p.CaseID, p.UserID)

		case PurposeSubscription:
			expiresAt, err := extendSubscription(ctx, tx, p.UserID, subscriptionPeriod)
			if err != nil {
				return err
			}
			out.SubscriptionExpiresAt = &expiresAt
			return nil

		default:
			return fmt.Errorf("settle payment: unknown purpose %q: %w", p.Purpose, core.ErrInvalidInput)
		}
	})
	if err != nil {
		return Settlement{}, err
	}
	return out, nil
}

func (r *repository) FindByOrder(ctx context.Context, orderID string) (*Payment, error) {
	query := `
		SELECT id, user_id, order_id, payment_id, purpose, amount, currency,
		       case_id, created_at
		FROM payments
		WHERE order_id = $1`

	var p Payment
	if err := r.db.GetContext(ctx, &p, query, orderID); err != nil {
		return nil, fmt.Errorf("find payment for order %s: %w", orderID, core.MapSQLError(err))
	}
	return &p, nil
}

func insertPayment(ctx context.Context, tx *sqlx.Tx, p *Payment) (bool, error) {
	query := `
		INSERT INTO payments (
			id, user_id, order_id, payment_id, purpose, amount, currency, case_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_id) DO NOTHING
		RETURNING created_at`

	err := tx.QueryRowxContext(ctx, query,
		p.ID,
		p.UserID,
		p.OrderID,
		p.PaymentID,
		p.Purpose,
		p.Amount,
		p.Currency,
		p.CaseID,
	).Scan(&p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("record payment: %w", err)
	}
	return true, nil
}

// extendSubscription adds period to the later of now and the current expiry
// so renewing early keeps the remaining time.
func extendSubscription(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	period time.Duration,
) (time.Time, error) {
	query := `
		UPDATE users
		SET has_active_subscription = TRUE,
		    subscription_expires_at = GREATEST(
		        COALESCE(subscription_expires_at, NOW()), NOW()
		    ) + make_interval(secs => $2),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING subscription_expires_at`

	var expiresAt time.Time
	err := tx.QueryRowxContext(ctx, query, userID, period.Seconds()).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("extend subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("extend subscription: %w", err)
	}
	return expiresAt, nil
}

func execOne(ctx context.Context, tx *sqlx.Tx, op, query string, args ...any) error {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
