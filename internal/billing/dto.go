// AngelaMos | 2026
// dto.go

package billing

import (
	"time"
)

// CreateOrderRequest carries the amount in whole rupees as the checkout
// screen shows it.
type CreateOrderRequest struct {
	Purpose string `json:"purpose" validate:"required,oneof=registration case subscription"`
	Amount  int64  `json:"amount"  validate:"gte=0"`
	CaseID  string `json:"caseId"  validate:"required_if=Purpose case"`
}

type VerifyRequest struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
	CaseID    string `json:"case_id,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

type VerifyResponse struct {
	Success               bool       `json:"success"`
	Message               string     `json:"message"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
}
