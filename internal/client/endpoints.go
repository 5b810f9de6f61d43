// AngelaMos | 2026
// endpoints.go

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Organization string            `json:"organization,omitempty"`
	Password     string            `json:"password"`
	Category     category.Category `json:"category"`
}

type ProfileUpdate struct {
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Organization   string `json:"organization,omitempty"`
	Address        string `json:"address"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Upload is an optional file attached to a create request.
type Upload struct {
	Name    string
	Content io.Reader
}

type DocumentInput struct {
	Type        model.DocumentType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Content     string             `json:"content,omitempty"`
}

type CaseInput struct {
	Issue string `json:"issue"`
}

type CaseUpdate struct {
	Status   model.CaseStatus `json:"status,omitempty"`
	Solution string           `json:"solution,omitempty"`
	Fee      int64            `json:"fee,omitempty"`
}

type OrderRequest struct {
	Purpose string `json:"purpose"`
	Amount  int64  `json:"amount"`
	CaseID  string `json:"caseId,omitempty"`
}

type Verification struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
	CaseID    string `json:"case_id,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

type UserQuery struct {
	Page     int
	Limit    int
	Search   string
	Category category.Category
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.DoAnonymous(ctx, http.MethodPost, "/login", creds, &out)
	return out, err
}

func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.DoAnonymous(ctx, http.MethodPost, "/admin/login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg Registration) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.DoAnonymous(ctx, http.MethodPost, "/register", reg, &out)
	return out, err
}

func (c *Client) GetProfile(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.Do(ctx, http.MethodGet, "/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error) {
	var out model.User
	err := c.Do(ctx, http.MethodPut, "/profile", p, &out)
	return out, err
}

func (c *Client) GetDocuments(ctx context.Context) ([]model.Document, error) {
	var out []model.Document
	err := c.getList(ctx, "/documents", "documents", &out)
	return out, err
}

// CreateDocument posts JSON, or multipart/form-data when a file is attached.
func (c *Client) CreateDocument(
	ctx context.Context,
	in DocumentInput,
	file *Upload,
) (model.Document, error) {
	var out model.Document
	var body any = in
	if file != nil {
		mp := NewMultipart().
			Field("type", string(in.Type)).
			Field("title", in.Title).
			Field("description", in.Description)
		if in.Content != "" {
			mp.Field("content", in.Content)
		}
		mp.Field("fileName", file.Name).File("file", file.Name, file.Content)
		body = mp
	}
	err := c.Do(ctx, http.MethodPost, "/documents", body, &out)
	return out, err
}

func (c *Client) UpdateDocument(
	ctx context.Context,
	id string,
	in DocumentInput,
) (model.Document, error) {
	var out model.Document
	err := c.Do(ctx, http.MethodPut, "/documents/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CheckLibraryAccess(ctx context.Context) (model.LibraryAccess, error) {
	var out model.LibraryAccess
	err := c.Do(ctx, http.MethodGet, "/library/access", nil, &out)
	return out, err
}

func (c *Client) GetCases(ctx context.Context) ([]model.Case, error) {
	var out []model.Case
	err := c.getList(ctx, "/cases", "cases", &out)
	return out, err
}

func (c *Client) CreateCase(ctx context.Context, in CaseInput, file *Upload) (model.Case, error) {
	mp := NewMultipart().Field("issue", in.Issue)
	if file != nil {
		mp.Field("documentName", file.Name).File("document", file.Name, file.Content)
	}

	var out model.Case
	err := c.Do(ctx, http.MethodPost, "/cases", mp, &out)
	return out, err
}

func (c *Client) UpdateCase(ctx context.Context, id string, in CaseUpdate) (model.Case, error) {
	var out model.Case
	err := c.Do(ctx, http.MethodPut, "/cases/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, in OrderRequest) (model.Order, error) {
	var out model.Order
	err := c.Do(ctx, http.MethodPost, "/createOrder", in, &out)
	return out, err
}

func (c *Client) VerifyPayment(ctx context.Context, v Verification) error {
	return c.Do(ctx, http.MethodPost, "/payment/verify", v, nil)
}

func (c *Client) VerifySubscription(ctx context.Context, v Verification) error {
	return c.Do(ctx, http.MethodPost, "/payment/verify-subscription", v, nil)
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) (model.UserPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}

	path := "/admin/users"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out model.UserPage
	err := c.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetFeedback(ctx context.Context) ([]model.Feedback, error) {
	var out []model.Feedback
	err := c.getList(ctx, "/feedback", "feedback", &out)
	return out, err
}

func (c *Client) SubmitFeedback(ctx context.Context, text string) (model.Feedback, error) {
	var out model.Feedback
	err := c.Do(ctx, http.MethodPost, "/feedback", map[string]string{"feedbackText": text}, &out)
	return out, err
}

func (c *Client) GetContacts(ctx context.Context) ([]model.ContactMessage, error) {
	var out []model.ContactMessage
	err := c.getList(ctx, "/contact", "messages", &out)
	return out, err
}

func (c *Client) SubmitContact(ctx context.Context, in ContactInput) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := c.DoAnonymous(ctx, http.MethodPost, "/contact", in, &out)
	return out, err
}

func (c *Client) ReplyContact(ctx context.Context, id, reply string) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := c.Do(
		ctx,
		http.MethodPost,
		"/contact/"+url.PathEscape(id)+"/reply",
		map[string]string{"reply": reply},
		&out,
	)
	return out, err
}

func (c *Client) GetNotes(ctx context.Context) ([]model.Note, error) {
	var out []model.Note
	err := c.getList(ctx, "/notes", "notes", &out)
	return out, err
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (model.Note, error) {
	var out model.Note
	err := c.Do(ctx, http.MethodPost, "/notes", in, &out)
	return out, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (model.Note, error) {
	var out model.Note
	err := c.Do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetMinerals(ctx context.Context) ([]model.Mineral, error) {
	var out []model.Mineral
	err := c.getList(ctx, "/minerals", "minerals", &out)
	return out, err
}

func (c *Client) VisitorStats(ctx context.Context) (model.VisitorStats, error) {
	var out model.VisitorStats
	err := c.DoAnonymous(ctx, http.MethodGet, "/visitor-stats", nil, &out)
	return out, err
}

func (c *Client) TrackVisitor(ctx context.Context, visitorID string) (model.VisitorStats, error) {
	var out model.VisitorStats
	err := c.DoAnonymous(
		ctx,
		http.MethodPost,
		"/track-visitor",
		map[string]string{"visitorId": visitorID},
		&out,
	)
	return out, err
}

// getList accepts either a bare JSON array or an object wrapping the array
// under key.
func (c *Client) getList(ctx context.Context, path, key string, out any) error {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("GET %s: decode list: %w", path, err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("GET %s: decode envelope: %w", path, err)
	}
	inner, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(inner, out); err != nil {
		return fmt.Errorf("GET %s: decode %s: %w", path, key, err)
	}
	return nil
}
