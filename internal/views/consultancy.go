// AngelaMos | 2026
// consultancy.go

package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

type ConsultancyAPI interface {
	GetCases(ctx context.Context) ([]model.Case, error)
	CreateCase(ctx context.Context, in client.CaseInput, file *client.Upload) (model.Case, error)
}

// Consultancy lists the signed-in user's legal cases and lets them raise
// new ones and pay for solved ones.
type Consultancy struct {
	api      ConsultancyAPI
	session  Session
	payments Payments
	notifier notify.Notifier

	mu    sync.RWMutex
	cases []model.Case
}

func NewConsultancy(
	api ConsultancyAPI,
	sess Session,
	payments Payments,
	notifier notify.Notifier,
) *Consultancy {
	c := &Consultancy{
		api:      api,
		session:  sess,
		payments: payments,
		notifier: orDiscard(notifier),
	}
	if payments != nil {
		payments.OnVerified(func(ctx context.Context, p payment.Purpose, _ string) {
			if p == payment.PurposeCase {
				_ = c.Refresh(ctx) //nolint:errcheck // reported through the notifier
			}
		})
	}
	return c
}

func (c *Consultancy) Mount(ctx context.Context) error {
	if !category.CanAccessConsultancy(c.session.CurrentUser().Category) {
		c.notifier.Notify(notify.Notice{Kind: notify.Info, Message: consultancyLockedMessage})
		return fmt.Errorf("mount consultancy: %w", ErrForbidden)
	}
	return c.Refresh(ctx)
}

// Refresh refetches cases and keeps the ones raised by the current user.
func (c *Consultancy) Refresh(ctx context.Context) error {
	all, err := c.api.GetCases(ctx)
	if err != nil {
		report(c.notifier, err, "Failed to load cases.")
		return fmt.Errorf("load cases: %w", err)
	}

	email := c.session.CurrentUser().Email
	mine := make([]model.Case, 0, len(all))
	for _, cs := range all {
		if email != "" && strings.EqualFold(cs.UserEmail, email) {
			mine = append(mine, cs)
		}
	}

	c.mu.Lock()
	c.cases = mine
	c.mu.Unlock()
	return nil
}

func (c *Consultancy) Cases() []model.Case {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Case(nil), c.cases...)
}

// Submit raises a new case with an optional supporting document.
func (c *Consultancy) Submit(ctx context.Context, issue string, file *client.Upload) (model.Case, error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return model.Case{}, invalid(c.notifier, "Please describe your issue.")
	}

	created, err := c.api.CreateCase(ctx, client.CaseInput{Issue: issue}, file)
	if err != nil {
		report(c.notifier, err, "Failed to submit case.")
		return model.Case{}, fmt.Errorf("submit case: %w", err)
	}
	c.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Case submitted successfully."})

	if err := c.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Pay opens checkout for a solved, unpaid case at the fee the admin set.
func (c *Consultancy) Pay(ctx context.Context, caseID string) (payment.CheckoutConfig, error) {
	cs, ok := c.find(caseID)
	if !ok {
		return payment.CheckoutConfig{}, fmt.Errorf("pay case %s: %w", caseID, ErrNotFound)
	}
	if !cs.Payable() {
		return payment.CheckoutConfig{}, fmt.Errorf("pay case %s: %w", caseID, ErrNotPayable)
	}
	if c.payments == nil {
		return payment.CheckoutConfig{}, fmt.Errorf("pay case %s: %w", caseID, payment.ErrInvalidRequest)
	}

	return c.payments.Initiate(ctx, payment.Request{
		Purpose: payment.PurposeCase,
		Amount:  cs.Fee,
		CaseID:  cs.ID,
	})
}

func (c *Consultancy) find(id string) (model.Case, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cs := range c.cases {
		if cs.ID == id {
			return cs, true
		}
	}
	return model.Case{}, false
}
