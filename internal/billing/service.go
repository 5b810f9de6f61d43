// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var (
	ErrAmountMismatch  = errors.New("amount does not match the price")
	ErrAlreadyPaid     = errors.New("already paid")
	ErrNotPayable      = errors.New("case is not awaiting payment")
	ErrBadSignature    = errors.New("payment signature mismatch")
	ErrUnknownOrder    = errors.New("unknown or expired order")
	ErrPurposeMismatch = errors.New("payment purpose does not match the order")
)

type Accounts interface {
	GetProfile(ctx context.Context, userID string) (model.User, error)
}

type Cases interface {
	Get(ctx context.Context, id string) (model.Case, string, error)
}

type Service struct {
	repo               Repository
	orders             *OrderStore
	accounts           Accounts
	cases              Cases
	publisher          events.Publisher
	logger             *slog.Logger
	payment            config.PaymentConfig
	subscriptionPeriod time.Duration
	flight             singleflight.Group
	now                func() time.Time
}

type ServiceConfig struct {
	Repository         Repository
	Orders             *OrderStore
	Accounts           Accounts
	Cases              Cases
	Publisher          events.Publisher
	Logger             *slog.Logger
	Payment            config.PaymentConfig
	SubscriptionPeriod time.Duration
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NewNopPublisher(cfg.Logger)
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "INR"
	}
	return &Service{
		repo:               cfg.Repository,
		orders:             cfg.Orders,
		accounts:           cfg.Accounts,
		cases:              cfg.Cases,
		publisher:          cfg.Publisher,
		logger:             cfg.Logger,
		payment:            cfg.Payment,
		subscriptionPeriod: cfg.SubscriptionPeriod,
		now:                time.Now,
	}
}

// CreateOrder prices the purchase from server-side data and issues a
// checkout order. A non-zero req.Amount must match that price.
func (s *Service) CreateOrder(
	ctx context.Context,
	userID string,
	req CreateOrderRequest,
) (model.Order, error) {
	price, caseID, err := s.price(ctx, userID, req)
	if err != nil {
		return model.Order{}, err
	}
	if req.Amount != 0 && req.Amount != price {
		return model.Order{}, fmt.Errorf("create order: %w", ErrAmountMismatch)
	}

	orderID, err := gonanoid.Generate(idAlphabet, 14)
	if err != nil {
		return model.Order{}, fmt.Errorf("generate order id: %w", err)
	}
	receipt, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return model.Order{}, fmt.Errorf("generate receipt: %w", err)
	}

	pending := PendingOrder{
		OrderID:   "order_" + orderID,
		UserID:    userID,
		Purpose:   req.Purpose,
		CaseID:    caseID,
		Amount:    price * 100,
		Currency:  s.payment.Currency,
		Receipt:   "rcpt_" + receipt,
		CreatedAt: s.now(),
	}
	if err := s.orders.Save(ctx, pending); err != nil {
		return model.Order{}, err
	}

	return model.Order{
		OrderID:  pending.OrderID,
		Amount:   pending.Amount,
		Currency: pending.Currency,
		Key:      s.payment.KeyID,
		Receipt:  pending.Receipt,
	}, nil
}

func (s *Service) price(
	ctx context.Context,
	userID string,
	req CreateOrderRequest,
) (int64, string, error) {
	switch req.Purpose {
	case PurposeRegistration:
		u, err := s.accounts.GetProfile(ctx, userID)
		if err != nil {
			return 0, "", err
		}
		if u.RegistrationPaid {
			return 0, "", fmt.Errorf("registration: %w", ErrAlreadyPaid)
		}
		fee, err := category.RegistrationFee(u.Category)
		return fee, "", err

	case PurposeSubscription:
		u, err := s.accounts.GetProfile(ctx, userID)
		if err != nil {
			return 0, "", err
		}
		fee, err := category.SubscriptionPrice(u.Category)
		return fee, "", err

	case PurposeCase:
		c, owner, err := s.cases.Get(ctx, req.CaseID)
		if err != nil {
			return 0, "", err
		}
		if owner != userID {
			return 0, "", fmt.Errorf("case %s: %w", req.CaseID, core.ErrNotFound)
		}
		if c.IsPaid {
			return 0, "", fmt.Errorf("case %s: %w", c.ID, ErrAlreadyPaid)
		}
		if !c.Payable() {
			return 0, "", fmt.Errorf("case %s: %w", c.ID, ErrNotPayable)
		}
		return c.Fee, c.ID, nil

	default:
		return 0, "", fmt.Errorf("purpose %q: %w", req.Purpose, core.ErrInvalidInput)
	}
}

// Verify checks a checkout result and applies its effect. subscription is
// true for the subscription endpoint, which only settles subscription
// orders. Verifying the same order twice succeeds without repeating the
// effect.
func (s *Service) Verify(
	ctx context.Context,
	userID string,
	req VerifyRequest,
	subscription bool,
) (VerifyResponse, error) {
	if !core.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, s.payment.KeySecret) {
		return VerifyResponse{}, fmt.Errorf("verify %s: %w", req.OrderID, ErrBadSignature)
	}

	v, err, _ := s.flight.Do(userID+"/"+req.OrderID, func() (any, error) {
		return s.settle(ctx, userID, req, subscription)
	})
	if err != nil {
		return VerifyResponse{}, err
	}
	return v.(VerifyResponse), nil //nolint:forcetypeassert // settle returns VerifyResponse
}

func (s *Service) settle(
	ctx context.Context,
	userID string,
	req VerifyRequest,
	subscription bool,
) (VerifyResponse, error) {
	order, err := s.orders.Load(ctx, req.OrderID)
	if errors.Is(err, ErrUnknownOrder) {
		return s.replay(ctx, userID, req, subscription, err)
	}
	if err != nil {
		return VerifyResponse{}, err
	}
	if order.UserID != userID {
		return VerifyResponse{}, fmt.Errorf("verify %s: %w", req.OrderID, ErrUnknownOrder)
	}
	if (order.Purpose == PurposeSubscription) != subscription ||
		(req.Purpose != "" && req.Purpose != order.Purpose) ||
		(req.CaseID != "" && req.CaseID != order.CaseID) {
		return VerifyResponse{}, fmt.Errorf("verify %s: %w", req.OrderID, ErrPurposeMismatch)
	}

	p := &Payment{
		ID:        uuid.New().String(),
		UserID:    userID,
		OrderID:   order.OrderID,
		PaymentID: req.PaymentID,
		Purpose:   order.Purpose,
		Amount:    order.Amount,
		Currency:  order.Currency,
	}
	if order.CaseID != "" {
		p.CaseID = &order.CaseID
	}

	settled, err := s.repo.Settle(ctx, p, s.subscriptionPeriod)
	if err != nil {
		return VerifyResponse{}, err
	}

	if err := s.orders.Delete(ctx, order.OrderID); err != nil {
		s.logger.WarnContext(ctx, "drop settled order failed", "order_id", order.OrderID, "error", err)
	}

	if !settled.AlreadyApplied {
		events.Emit(ctx, s.publisher, s.logger, events.Event{
			Type: events.PaymentVerified,
			Payload: map[string]any{
				"userId":    userID,
				"orderId":   order.OrderID,
				"paymentId": req.PaymentID,
				"purpose":   order.Purpose,
				"amount":    order.Amount,
				"caseId":    order.CaseID,
			},
		})
	}

	return VerifyResponse{
		Success:               true,
		Message:               successMessage(order.Purpose),
		SubscriptionExpiresAt: settled.SubscriptionExpiresAt,
	}, nil
}

// replay answers a repeated verification after the pending order was dropped.
// Only a recorded payment for the same user and checkout result counts.
func (s *Service) replay(
	ctx context.Context,
	userID string,
	req VerifyRequest,
	subscription bool,
	orderErr error,
) (VerifyResponse, error) {
	p, err := s.repo.FindByOrder(ctx, req.OrderID)
	if errors.Is(err, core.ErrNotFound) {
		return VerifyResponse{}, orderErr
	}
	if err != nil {
		return VerifyResponse{}, err
	}
	if p.UserID != userID || p.PaymentID != req.PaymentID {
		return VerifyResponse{}, orderErr
	}
	if (p.Purpose == PurposeSubscription) != subscription {
		return VerifyResponse{}, fmt.Errorf("verify %s: %w", req.OrderID, ErrPurposeMismatch)
	}

	return VerifyResponse{
		Success: true,
		Message: successMessage(p.Purpose),
	}, nil
}

func successMessage(purpose string) string {
	switch purpose {
	case PurposeRegistration:
		return "Registration payment verified"
	case PurposeCase:
		return "Case payment verified"
	default:
		return "Subscription activated"
	}
}
