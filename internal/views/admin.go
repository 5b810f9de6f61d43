// AngelaMos | 2026
// admin.go

package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

type AdminAPI interface {
	ListUsers(ctx context.Context, q client.UserQuery) (model.UserPage, error)
	GetDocuments(ctx context.Context) ([]model.Document, error)
	CreateDocument(ctx context.Context, in client.DocumentInput, file *client.Upload) (model.Document, error)
	UpdateDocument(ctx context.Context, id string, in client.DocumentInput) (model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	GetCases(ctx context.Context) ([]model.Case, error)
	UpdateCase(ctx context.Context, id string, in client.CaseUpdate) (model.Case, error)
	GetFeedback(ctx context.Context) ([]model.Feedback, error)
	GetContacts(ctx context.Context) ([]model.ContactMessage, error)
	ReplyContact(ctx context.Context, id, reply string) (model.ContactMessage, error)
}

// Admin is the console for role=admin sessions.
type Admin struct {
	api      AdminAPI
	session  Session
	notifier notify.Notifier

	mu        sync.RWMutex
	users     model.UserPage
	query     client.UserQuery
	documents []model.Document
	cases     []model.Case
	feedback  []model.Feedback
	contacts  []model.ContactMessage
}

func NewAdmin(api AdminAPI, sess Session, notifier notify.Notifier) *Admin {
	return &Admin{
		api:      api,
		session:  sess,
		notifier: orDiscard(notifier),
		query:    client.UserQuery{Page: 1, Limit: 20},
	}
}

func (a *Admin) authorize(op string) error {
	if !a.session.IsAuthenticated() || !a.session.IsAdmin() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return nil
}

// Mount loads every admin collection concurrently. The first failure
// cancels the rest.
func (a *Admin) Mount(ctx context.Context) error {
	if err := a.authorize("mount admin"); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.refreshUsers(gctx) })
	g.Go(func() error { return a.refreshDocuments(gctx) })
	g.Go(func() error { return a.refreshCases(gctx) })
	g.Go(func() error { return a.refreshFeedback(gctx) })
	g.Go(func() error { return a.refreshContacts(gctx) })

	if err := g.Wait(); err != nil {
		report(a.notifier, err, "Failed to load admin data.")
		return fmt.Errorf("mount admin: %w", err)
	}
	return nil
}

// SearchUsers changes the user list filter and reloads it.
func (a *Admin) SearchUsers(ctx context.Context, q client.UserQuery) error {
	if err := a.authorize("search users"); err != nil {
		return err
	}
	if q.Page < 1 {
		q.Page = 1
	}
	a.mu.Lock()
	a.query = q
	a.mu.Unlock()

	if err := a.refreshUsers(ctx); err != nil {
		report(a.notifier, err, "Failed to load users.")
		return err
	}
	return nil
}

func (a *Admin) AddDocument(
	ctx context.Context,
	in client.DocumentInput,
	file *client.Upload,
) (model.Document, error) {
	if err := a.authorize("add document"); err != nil {
		return model.Document{}, err
	}
	if err := checkDocument(a.notifier, in); err != nil {
		return model.Document{}, err
	}

	doc, err := a.api.CreateDocument(ctx, in, file)
	if err != nil {
		report(a.notifier, err, "Failed to add document.")
		return model.Document{}, fmt.Errorf("add document: %w", err)
	}
	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Document added successfully."})
	return doc, a.refreshDocumentsReported(ctx)
}

func (a *Admin) UpdateDocument(
	ctx context.Context,
	id string,
	in client.DocumentInput,
) (model.Document, error) {
	if err := a.authorize("update document"); err != nil {
		return model.Document{}, err
	}
	if err := checkDocument(a.notifier, in); err != nil {
		return model.Document{}, err
	}

	doc, err := a.api.UpdateDocument(ctx, id, in)
	if err != nil {
		report(a.notifier, err, "Failed to update document.")
		return model.Document{}, fmt.Errorf("update document %s: %w", id, err)
	}
	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Document updated successfully."})
	return doc, a.refreshDocumentsReported(ctx)
}

func (a *Admin) DeleteDocument(ctx context.Context, id string) error {
	if err := a.authorize("delete document"); err != nil {
		return err
	}
	if err := a.api.DeleteDocument(ctx, id); err != nil {
		report(a.notifier, err, "Failed to delete document.")
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Document deleted successfully."})
	return a.refreshDocumentsReported(ctx)
}

// SolveCase records the admin's solution and fee, which makes the case
// payable by its owner.
func (a *Admin) SolveCase(ctx context.Context, id, solution string, fee int64) (model.Case, error) {
	if err := a.authorize("solve case"); err != nil {
		return model.Case{}, err
	}
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return model.Case{}, invalid(a.notifier, "Please enter a solution.")
	}
	if fee <= 0 {
		return model.Case{}, invalid(a.notifier, "Please enter a valid fee.")
	}

	cs, err := a.api.UpdateCase(ctx, id, client.CaseUpdate{
		Status:   model.CaseSolutionReady,
		Solution: solution,
		Fee:      fee,
	})
	if err != nil {
		report(a.notifier, err, "Failed to update case.")
		return model.Case{}, fmt.Errorf("solve case %s: %w", id, err)
	}
	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Solution sent to the user."})

	if err := a.refreshCases(ctx); err != nil {
		report(a.notifier, err, "Failed to load cases.")
		return cs, err
	}
	return cs, nil
}

func (a *Admin) ReplyContact(ctx context.Context, id, reply string) (model.ContactMessage, error) {
	if err := a.authorize("reply contact"); err != nil {
		return model.ContactMessage{}, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return model.ContactMessage{}, invalid(a.notifier, "Please enter a reply.")
	}

	msg, err := a.api.ReplyContact(ctx, id, reply)
	if err != nil {
		report(a.notifier, err, "Failed to send reply.")
		return model.ContactMessage{}, fmt.Errorf("reply contact %s: %w", id, err)
	}
	a.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Reply sent."})

	if err := a.refreshContacts(ctx); err != nil {
		report(a.notifier, err, "Failed to load messages.")
		return msg, err
	}
	return msg, nil
}

func (a *Admin) Users() model.UserPage {
	a.mu.RLock()
	defer a.mu.RUnlock()
	page := a.users
	page.Users = append([]model.User(nil), a.users.Users...)
	return page
}

func (a *Admin) Documents() []model.Document {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.Document(nil), a.documents...)
}

func (a *Admin) Cases() []model.Case {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.Case(nil), a.cases...)
}

func (a *Admin) Feedback() []model.Feedback {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.Feedback(nil), a.feedback...)
}

func (a *Admin) Contacts() []model.ContactMessage {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.ContactMessage(nil), a.contacts...)
}

func (a *Admin) refreshUsers(ctx context.Context) error {
	a.mu.RLock()
	q := a.query
	a.mu.RUnlock()

	page, err := a.api.ListUsers(ctx, q)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	a.mu.Lock()
	a.users = page
	a.mu.Unlock()
	return nil
}

func (a *Admin) refreshDocuments(ctx context.Context) error {
	docs, err := a.api.GetDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	a.mu.Lock()
	a.documents = docs
	a.mu.Unlock()
	return nil
}

func (a *Admin) refreshDocumentsReported(ctx context.Context) error {
	if err := a.refreshDocuments(ctx); err != nil {
		report(a.notifier, err, "Failed to load documents.")
		return err
	}
	return nil
}

func (a *Admin) refreshCases(ctx context.Context) error {
	cases, err := a.api.GetCases(ctx)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}
	a.mu.Lock()
	a.cases = cases
	a.mu.Unlock()
	return nil
}

func (a *Admin) refreshFeedback(ctx context.Context) error {
	fb, err := a.api.GetFeedback(ctx)
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}
	a.mu.Lock()
	a.feedback = fb
	a.mu.Unlock()
	return nil
}

func (a *Admin) refreshContacts(ctx context.Context) error {
	msgs, err := a.api.GetContacts(ctx)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	a.mu.Lock()
	a.contacts = msgs
	a.mu.Unlock()
	return nil
}

func checkDocument(n notify.Notifier, in client.DocumentInput) error {
	if !in.Type.Valid() {
		return invalid(n, "Please choose a document type.")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid(n, "Title is required.")
	}
	return nil
}
