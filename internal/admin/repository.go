// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

// Overview is the operator's one-glance summary of the platform.
type Overview struct {
	Users              int   `db:"users"               json:"users"`
	ActiveSubscribers  int   `db:"active_subscribers"  json:"active_subscribers"`
	Documents          int   `db:"documents"           json:"documents"`
	PendingCases       int   `db:"pending_cases"       json:"pending_cases"`
	AwaitingPayment    int   `db:"awaiting_payment"    json:"awaiting_payment"`
	UnansweredMessages int   `db:"unanswered_messages" json:"unanswered_messages"`
	RevenuePaise       int64 `db:"revenue_paise"       json:"revenue_paise"`
}

type Repository interface {
	Overview(ctx context.Context) (Overview, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context) (Overview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'user') AS users,
			(SELECT COUNT(*) FROM users
			  WHERE has_active_subscription AND subscription_expires_at > NOW()) AS active_subscribers,
			(SELECT COUNT(*) FROM documents) AS documents,
			(SELECT COUNT(*) FROM cases WHERE status = 'PENDING') AS pending_cases,
			(SELECT COUNT(*) FROM cases
			  WHERE status = 'SOLUTION_READY' AND NOT is_paid) AS awaiting_payment,
			(SELECT COUNT(*) FROM contact_messages WHERE reply = '') AS unanswered_messages,
			(SELECT COALESCE(SUM(amount), 0) FROM payments) AS revenue_paise`

	var o Overview
	if err := r.db.GetContext(ctx, &o, query); err != nil {
		return Overview{}, fmt.Errorf("admin overview: %w", err)
	}
	return o, nil
}
