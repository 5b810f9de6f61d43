// AngelaMos | 2026
// library.go

package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

const defaultDeniedReason = "An active library subscription is required to open the Digital Library."

type LibraryAPI interface {
	CheckLibraryAccess(ctx context.Context) (model.LibraryAccess, error)
	GetDocuments(ctx context.Context) ([]model.Document, error)
}

// Library is the Digital Library view. The server decides access; the
// documents are only fetched once it has said yes.
type Library struct {
	api      LibraryAPI
	session  Session
	payments Payments
	notifier notify.Notifier

	mu        sync.RWMutex
	access    model.LibraryAccess
	documents []model.Document
}

func NewLibrary(api LibraryAPI, sess Session, payments Payments, notifier notify.Notifier) *Library {
	l := &Library{
		api:      api,
		session:  sess,
		payments: payments,
		notifier: orDiscard(notifier),
	}
	if payments != nil {
		payments.OnVerified(func(ctx context.Context, p payment.Purpose, _ string) {
			if p == payment.PurposeSubscription {
				_ = l.Mount(ctx) //nolint:errcheck // reported through the notifier
			}
		})
	}
	return l
}

func (l *Library) Mount(ctx context.Context) error {
	access, err := l.api.CheckLibraryAccess(ctx)
	if err != nil {
		report(l.notifier, err, "Failed to check library access.")
		return fmt.Errorf("check library access: %w", err)
	}

	l.mu.Lock()
	l.access = access
	if !access.HasAccess {
		l.documents = nil
	}
	l.mu.Unlock()

	if !access.HasAccess {
		reason := access.Reason
		if reason == "" {
			reason = defaultDeniedReason
		}
		l.notifier.Notify(notify.Notice{Kind: notify.Info, Message: reason})
		return ErrAccessDenied
	}

	docs, err := l.api.GetDocuments(ctx)
	if err != nil {
		report(l.notifier, err, "Failed to load documents.")
		return fmt.Errorf("load documents: %w", err)
	}

	l.mu.Lock()
	l.documents = docs
	l.mu.Unlock()
	return nil
}

func (l *Library) Access() model.LibraryAccess {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.access
}

func (l *Library) Documents() []model.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Document(nil), l.documents...)
}

// Filter narrows the loaded documents to one type tab (empty for all) and a
// case-insensitive match on title or description.
func (l *Library) Filter(t model.DocumentType, search string) []model.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return filterDocuments(l.documents, t, search)
}

func filterDocuments(docs []model.Document, t model.DocumentType, search string) []model.Document {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if t != "" && d.Type != t {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(d.Title), needle) &&
			!strings.Contains(strings.ToLower(d.Description), needle) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Subscribe opens the annual subscription checkout priced for the user's
// category.
func (l *Library) Subscribe(ctx context.Context) (payment.CheckoutConfig, error) {
	if l.payments == nil {
		return payment.CheckoutConfig{}, fmt.Errorf("subscribe: %w", payment.ErrInvalidRequest)
	}
	c := l.session.CurrentUser().Category
	info, err := category.Lookup(c)
	if err != nil {
		l.notifier.Notify(notify.Notice{
			Kind:    notify.Error,
			Message: "Your account has no valid category. Please contact support.",
		})
		return payment.CheckoutConfig{}, fmt.Errorf("subscribe: %w", err)
	}

	return l.payments.Initiate(ctx, payment.Request{
		Purpose:     payment.PurposeSubscription,
		Amount:      info.SubscriptionFee,
		Description: "Annual library subscription (" + info.Label + ")",
	})
}
