// AngelaMos | 2026
// fakes_test.go

package views

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSession struct {
	user  model.User
	admin bool
	authn bool
}

func (s *fakeSession) CurrentUser() model.User { return s.user }
func (s *fakeSession) IsAuthenticated() bool   { return s.authn }
func (s *fakeSession) IsAdmin() bool           { return s.admin }
func (s *fakeSession) Now() time.Time          { return now }

type fakePayments struct {
	mu        sync.Mutex
	requests  []payment.Request
	listeners []payment.Listener
	err       error
}

func (p *fakePayments) Initiate(_ context.Context, req payment.Request) (payment.CheckoutConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.err != nil {
		return payment.CheckoutConfig{}, p.err
	}
	return payment.CheckoutConfig{OrderID: "order_1", Amount: req.Amount * 100}, nil
}

func (p *fakePayments) OnVerified(l payment.Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

func (p *fakePayments) verified(ctx context.Context, purpose payment.Purpose, caseID string) {
	p.mu.Lock()
	ls := append([]payment.Listener(nil), p.listeners...)
	p.mu.Unlock()
	for _, l := range ls {
		l(ctx, purpose, caseID)
	}
}

// fakeAPI is an in-memory backend covering every view's API interface.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int
	err   map[string]error

	access    model.LibraryAccess
	documents []model.Document
	cases     []model.Case
	users     model.UserPage
	userQuery client.UserQuery
	feedback  []model.Feedback
	contacts  []model.ContactMessage
	notes     []model.Note
	minerals  []model.Mineral
	stats     model.VisitorStats
	uploads   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), err: make(map[string]error)}
}

func (f *fakeAPI) hit(name string) error {
	f.calls[name]++
	return f.err[name]
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) CheckLibraryAccess(context.Context) (model.LibraryAccess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, f.hit("access")
}

func (f *fakeAPI) GetDocuments(context.Context) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("documents"); err != nil {
		return nil, err
	}
	return append([]model.Document(nil), f.documents...), nil
}

func (f *fakeAPI) CreateDocument(_ context.Context, in client.DocumentInput, file *client.Upload) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("create-document"); err != nil {
		return model.Document{}, err
	}
	d := model.Document{ID: "d" + strconv.Itoa(len(f.documents)+1), Type: in.Type, Title: in.Title, Description: in.Description}
	if file != nil {
		d.FileName = file.Name
		f.uploads = append(f.uploads, file.Name)
	}
	f.documents = append(f.documents, d)
	return d, nil
}

func (f *fakeAPI) UpdateDocument(_ context.Context, id string, in client.DocumentInput) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("update-document"); err != nil {
		return model.Document{}, err
	}
	for i := range f.documents {
		if f.documents[i].ID == id {
			f.documents[i].Title = in.Title
			f.documents[i].Description = in.Description
			f.documents[i].Type = in.Type
			return f.documents[i], nil
		}
	}
	return model.Document{}, &client.HTTPError{Status: 404, Message: "Document not found"}
}

func (f *fakeAPI) DeleteDocument(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("delete-document"); err != nil {
		return err
	}
	for i := range f.documents {
		if f.documents[i].ID == id {
			f.documents = append(f.documents[:i], f.documents[i+1:]...)
			return nil
		}
	}
	return &client.HTTPError{Status: 404, Message: "Document not found"}
}

func (f *fakeAPI) GetCases(context.Context) ([]model.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("cases"); err != nil {
		return nil, err
	}
	return append([]model.Case(nil), f.cases...), nil
}

func (f *fakeAPI) CreateCase(_ context.Context, in client.CaseInput, file *client.Upload) (model.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("create-case"); err != nil {
		return model.Case{}, err
	}
	c := model.Case{
		ID:        "c" + strconv.Itoa(len(f.cases)+1),
		Issue:     in.Issue,
		Status:    model.CasePending,
		UserEmail: "owner@firm.in",
	}
	if file != nil {
		c.DocumentName = file.Name
		f.uploads = append(f.uploads, file.Name)
	}
	f.cases = append(f.cases, c)
	return c, nil
}

func (f *fakeAPI) UpdateCase(_ context.Context, id string, in client.CaseUpdate) (model.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("update-case"); err != nil {
		return model.Case{}, err
	}
	for i := range f.cases {
		if f.cases[i].ID == id {
			f.cases[i].Status = in.Status
			f.cases[i].Solution = in.Solution
			f.cases[i].Fee = in.Fee
			return f.cases[i], nil
		}
	}
	return model.Case{}, &client.HTTPError{Status: 404, Message: "Case not found"}
}

func (f *fakeAPI) ListUsers(_ context.Context, q client.UserQuery) (model.UserPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userQuery = q
	return f.users, f.hit("users")
}

func (f *fakeAPI) GetFeedback(context.Context) ([]model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Feedback(nil), f.feedback...), f.hit("feedback")
}

func (f *fakeAPI) SubmitFeedback(_ context.Context, text string) (model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("submit-feedback"); err != nil {
		return model.Feedback{}, err
	}
	fb := model.Feedback{ID: "f1", FeedbackText: text}
	f.feedback = append(f.feedback, fb)
	return fb, nil
}

func (f *fakeAPI) GetContacts(context.Context) ([]model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ContactMessage(nil), f.contacts...), f.hit("contacts")
}

func (f *fakeAPI) SubmitContact(_ context.Context, in client.ContactInput) (model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("submit-contact"); err != nil {
		return model.ContactMessage{}, err
	}
	m := model.ContactMessage{ID: "m1", Name: in.Name, Email: in.Email, Message: in.Message}
	f.contacts = append(f.contacts, m)
	return m, nil
}

func (f *fakeAPI) ReplyContact(_ context.Context, id, reply string) (model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("reply-contact"); err != nil {
		return model.ContactMessage{}, err
	}
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts[i].Reply = reply
			return f.contacts[i], nil
		}
	}
	return model.ContactMessage{}, &client.HTTPError{Status: 404, Message: "Message not found"}
}

func (f *fakeAPI) GetNotes(context.Context) ([]model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Note(nil), f.notes...), f.hit("notes")
}

func (f *fakeAPI) CreateNote(_ context.Context, in client.NoteInput) (model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("create-note"); err != nil {
		return model.Note{}, err
	}
	n := model.Note{ID: "n" + strconv.Itoa(len(f.notes)+1), Title: in.Title, Content: in.Content}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, id string, in client.NoteInput) (model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("update-note"); err != nil {
		return model.Note{}, err
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Title = in.Title
			f.notes[i].Content = in.Content
			return f.notes[i], nil
		}
	}
	return model.Note{}, &client.HTTPError{Status: 404, Message: "Note not found"}
}

func (f *fakeAPI) DeleteNote(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hit("delete-note")
}

func (f *fakeAPI) GetMinerals(context.Context) ([]model.Mineral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minerals, f.hit("minerals")
}

func (f *fakeAPI) TrackVisitor(context.Context, string) (model.VisitorStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.TotalVisits++
	f.stats.UniqueVisitors = 1
	return f.stats, f.hit("track")
}

func (f *fakeAPI) VisitorStats(context.Context) (model.VisitorStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, f.hit("stats")
}
