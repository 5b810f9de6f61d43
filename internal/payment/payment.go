// AngelaMos | 2026
// payment.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

var (
	ErrUnknownOrder   = errors.New("unknown or expired order")
	ErrInvalidRequest = errors.New("invalid payment request")
)

type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposeCase         Purpose = "case"
	PurposeSubscription Purpose = "subscription"
)

type Request struct {
	Purpose     Purpose
	Amount      int64
	CaseID      string
	Description string
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutConfig is what the hosted checkout needs to render. Amount is in
// the smallest currency unit, copied from the server order.
type CheckoutConfig struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	ThemeColor  string  `json:"theme_color"`
}

// Gateway opens the third-party checkout. The checkout reports back through
// Adapter.OnPaymentResult, not through Open's return value.
type Gateway interface {
	Open(ctx context.Context, cfg CheckoutConfig) error
}

type API interface {
	CreateOrder(ctx context.Context, in client.OrderRequest) (model.Order, error)
	VerifyPayment(ctx context.Context, v client.Verification) error
	VerifySubscription(ctx context.Context, v client.Verification) error
	GetProfile(ctx context.Context) (model.User, error)
}

type Session interface {
	CurrentUser() model.User
	SetUser(u model.User)
	IsAuthenticated() bool
}

// Listener runs after a payment is verified so views can refetch whatever
// the payment changed.
type Listener func(ctx context.Context, purpose Purpose, caseID string)

type Options struct {
	MerchantName string
	ThemeColor   string
	PendingTTL   time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

type pending struct {
	req       Request
	createdAt time.Time
}

type Adapter struct {
	api      API
	session  Session
	gateway  Gateway
	notifier notify.Notifier
	opts     Options

	mu        sync.Mutex
	pending   map[string]pending
	listeners []Listener
}

func NewAdapter(
	api API,
	sess Session,
	gateway Gateway,
	notifier notify.Notifier,
	opts Options,
) *Adapter {
	if opts.MerchantName == "" {
		opts.MerchantName = "Mines and Minerals Laws"
	}
	if opts.ThemeColor == "" {
		opts.ThemeColor = "#1a3b5d"
	}
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = 30 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Adapter{
		api:      api,
		session:  sess,
		gateway:  gateway,
		notifier: notifier,
		opts:     opts,
		pending:  make(map[string]pending),
	}
}

func (a *Adapter) OnVerified(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// Initiate asks the server for an order and opens the checkout for it. If
// the order cannot be created the checkout never opens.
func (a *Adapter) Initiate(ctx context.Context, req Request) (CheckoutConfig, error) {
	if err := validateRequest(req); err != nil {
		return CheckoutConfig{}, err
	}

	order, err := a.api.CreateOrder(ctx, client.OrderRequest{
		Purpose: string(req.Purpose),
		Amount:  req.Amount,
		CaseID:  req.CaseID,
	})
	if err != nil {
		a.notifyFailure(err, "Failed to create payment order")
		return CheckoutConfig{}, fmt.Errorf("create order: %w", err)
	}

	user := a.session.CurrentUser()
	cfg := CheckoutConfig{
		Key:         order.Key,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        a.opts.MerchantName,
		Description: describe(req),
		OrderID:     order.OrderID,
		Prefill: Prefill{
			Name:    user.Name,
			Email:   user.Email,
			Contact: user.Phone,
		},
		ThemeColor: a.opts.ThemeColor,
	}

	a.mu.Lock()
	a.pending[order.OrderID] = pending{req: req, createdAt: a.opts.Now()}
	a.mu.Unlock()

	if err := a.gateway.Open(ctx, cfg); err != nil {
		a.forget(order.OrderID)
		a.notifier.Notify(notify.Notice{
			Kind:    notify.Payment,
			Message: "Could not open the payment checkout. Please try again.",
		})
		return cfg, fmt.Errorf("open checkout: %w", err)
	}

	return cfg, nil
}

// Pending reports whether orderID is awaiting a checkout result.
func (a *Adapter) Pending(orderID string) bool {
	_, ok := a.lookup(orderID)
	return ok
}

// OnPaymentResult is the single entry point the checkout calls back into.
// User-facing failures are reported through the notifier; the returned
// error is for programmatic callers only.
func (a *Adapter) OnPaymentResult(ctx context.Context, outcome Outcome) error {
	p, ok := a.lookup(outcome.order())
	if !ok {
		a.opts.Logger.WarnContext(ctx, "payment result for unknown order",
			"order_id", outcome.order())
		return fmt.Errorf("payment result %s: %w", outcome.order(), ErrUnknownOrder)
	}

	switch o := outcome.(type) {
	case Succeeded:
		return a.verify(ctx, p.req, o)
	case Dismissed:
		a.forget(o.OrderID)
		a.opts.Logger.InfoContext(ctx, "checkout dismissed",
			"order_id", o.OrderID,
			"purpose", p.req.Purpose,
		)
		return nil
	case Failed:
		a.opts.Logger.WarnContext(ctx, "payment failed",
			"order_id", o.OrderID,
			"code", o.Code,
			"description", o.Description,
		)
		a.notifier.Notify(notify.Notice{
			Kind:    notify.Payment,
			Message: "Payment failed: " + o.Description,
		})
		return nil
	default:
		return fmt.Errorf("payment result: unsupported outcome %T", outcome)
	}
}

func (a *Adapter) verify(ctx context.Context, req Request, s Succeeded) error {
	v := client.Verification{
		PaymentID: s.PaymentID,
		OrderID:   s.OrderID,
		Signature: s.Signature,
		CaseID:    req.CaseID,
		Purpose:   string(req.Purpose),
	}

	var err error
	if req.Purpose == PurposeSubscription {
		err = a.api.VerifySubscription(ctx, v)
	} else {
		err = a.api.VerifyPayment(ctx, v)
	}
	if err != nil {
		a.notifyFailure(err, "Payment verification failed")
		return fmt.Errorf("verify payment %s: %w", s.OrderID, err)
	}

	a.forget(s.OrderID)

	if req.Purpose != PurposeCase {
		user, err := a.api.GetProfile(ctx)
		switch {
		case err == nil:
			a.session.SetUser(user)
		case req.Purpose == PurposeSubscription && a.session.IsAuthenticated():
			a.opts.Logger.WarnContext(ctx, "refresh profile after payment",
				"order_id", s.OrderID,
				"error", err,
			)
			user = a.session.CurrentUser()
			user.HasActiveSubscription = true
			a.session.SetUser(user)
		default:
			a.opts.Logger.WarnContext(ctx, "refresh profile after payment",
				"order_id", s.OrderID,
				"error", err,
			)
		}
	}

	a.mu.Lock()
	listeners := append([]Listener(nil), a.listeners...)
	a.mu.Unlock()
	for _, l := range listeners {
		l(ctx, req.Purpose, req.CaseID)
	}

	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: successMessage(req.Purpose)})
	return nil
}

func (a *Adapter) notifyFailure(err error, fallback string) {
	if client.IsUnauthorized(err) {
		return
	}
	a.notifier.Notify(notify.FromError(err, fallback))
}

func (a *Adapter) lookup(orderID string) (pending, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[orderID]
	if !ok {
		return pending{}, false
	}
	if a.opts.Now().Sub(p.createdAt) > a.opts.PendingTTL {
		delete(a.pending, orderID)
		return pending{}, false
	}
	return p, true
}

func (a *Adapter) forget(orderID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, orderID)
}

func validateRequest(req Request) error {
	switch req.Purpose {
	case PurposeRegistration, PurposeSubscription:
	case PurposeCase:
		if req.CaseID == "" {
			return fmt.Errorf("case payment without case id: %w", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("purpose %q: %w", req.Purpose, ErrInvalidRequest)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount %d: %w", req.Amount, ErrInvalidRequest)
	}
	return nil
}

func describe(req Request) string {
	if req.Description != "" {
		return req.Description
	}
	switch req.Purpose {
	case PurposeCase:
		return "Payment for case: " + req.CaseID
	case PurposeSubscription:
		return "Annual library subscription"
	default:
		return "One-time registration fee"
	}
}

func successMessage(p Purpose) string {
	switch p {
	case PurposeCase:
		return "Payment successful! You can now access the solution."
	case PurposeSubscription:
		return "Subscription successful! You now have full access to the Digital Library."
	default:
		return "Registration fee received. Thank you!"
	}
}
