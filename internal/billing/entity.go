// AngelaMos | 2026
// entity.go

package billing

import (
	"time"
)

const (
	PurposeRegistration = "registration"
	PurposeCase         = "case"
	PurposeSubscription = "subscription"
)

// PendingOrder is what the server remembers about an issued order until the
// checkout result is verified or the order expires. Amount is in paise.
type PendingOrder struct {
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Purpose   string    `json:"purpose"`
	CaseID    string    `json:"caseId,omitempty"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	CreatedAt time.Time `json:"createdAt"`
}

type Payment struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	OrderID   string    `db:"order_id"`
	PaymentID string    `db:"payment_id"`
	Purpose   string    `db:"purpose"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	CaseID    *string   `db:"case_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Settlement reports what a verified payment changed.
type Settlement struct {
	AlreadyApplied        bool
	SubscriptionExpiresAt *time.Time
}
