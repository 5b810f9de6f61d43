// AngelaMos | 2026
// views.go

package views

import (
	"context"
	"errors"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

var (
	ErrAccessDenied = errors.New("library access denied")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNotPayable   = errors.New("case is not payable")
	ErrInvalidInput = errors.New("invalid input")
)

// Session is the read side of the session store the views depend on.
type Session interface {
	CurrentUser() model.User
	IsAuthenticated() bool
	IsAdmin() bool
	Now() time.Time
}

type Payments interface {
	Initiate(ctx context.Context, req payment.Request) (payment.CheckoutConfig, error)
	OnVerified(l payment.Listener)
}

// report surfaces err to the user. 401s are skipped because the session
// expiry hook already told the user and moved them to login.
func report(n notify.Notifier, err error, fallback string) {
	if err == nil || client.IsUnauthorized(err) {
		return
	}
	n.Notify(notify.FromError(err, fallback))
}

func invalid(n notify.Notifier, msg string) error {
	n.Notify(notify.Notice{Kind: notify.Validation, Message: msg})
	return errors.Join(ErrInvalidInput, errors.New(msg))
}

func orDiscard(n notify.Notifier) notify.Notifier {
	if n == nil {
		return notify.Discard{}
	}
	return n
}
