// AngelaMos | 2026
// model.go

package model

import (
	"strings"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/category"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Email                 string            `json:"email"`
	Phone                 string            `json:"phone"`
	Organization          string            `json:"organization,omitempty"`
	Category              category.Category `json:"category"`
	Address               string            `json:"address"`
	Bio                   string            `json:"bio"`
	ProfilePicture        string            `json:"profilePicture,omitempty"`
	Role                  string            `json:"role"`
	HasActiveSubscription bool              `json:"hasActiveSubscription"`
	SubscriptionExpiresAt *time.Time        `json:"subscriptionExpiresAt,omitempty"`
	TrialEndsAt           *time.Time        `json:"trialEndsAt,omitempty"`
	RegistrationPaid      bool              `json:"registrationPaid"`
	CreatedAt             time.Time         `json:"createdAt,omitzero"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOnboarded uses a non-empty address as the marker that the profile step
// has been completed.
func (u User) IsOnboarded() bool {
	return strings.TrimSpace(u.Address) != ""
}

func (u User) InTrial(now time.Time) bool {
	return u.TrialEndsAt != nil && now.Before(*u.TrialEndsAt)
}

func (u User) TrialDaysLeft(now time.Time) int {
	if !u.InTrial(now) {
		return 0
	}
	left := u.TrialEndsAt.Sub(now)
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func (u User) HasLibraryAccess(now time.Time) bool {
	return u.HasActiveSubscription || u.InTrial(now)
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type DocumentType string

const (
	BareAct         DocumentType = "BARE_ACT"
	Notification    DocumentType = "NOTIFICATION"
	Circular        DocumentType = "CIRCULAR"
	GovernmentOrder DocumentType = "GOVERNMENT_ORDER"
	Judgement       DocumentType = "JUDGEMENT"
)

var DocumentTypes = []DocumentType{
	BareAct,
	Notification,
	Circular,
	GovernmentOrder,
	Judgement,
}

func (t DocumentType) Valid() bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

type Document struct {
	ID          string       `json:"id"`
	Type        DocumentType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	Content     string       `json:"content,omitempty"`
	FileURL     string       `json:"fileUrl,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
}

type CaseStatus string

const (
	CasePending       CaseStatus = "PENDING"
	CaseSolutionReady CaseStatus = "SOLUTION_READY"
	CaseCompleted     CaseStatus = "COMPLETED"
)

type Case struct {
	ID           string     `json:"id"`
	Date         time.Time  `json:"date"`
	Issue        string     `json:"issue"`
	DocumentURL  string     `json:"document,omitempty"`
	DocumentName string     `json:"documentName"`
	Status       CaseStatus `json:"status"`
	Solution     string     `json:"solution,omitempty"`
	Fee          int64      `json:"fee,omitempty"`
	IsPaid       bool       `json:"isPaid"`
	UserName     string     `json:"userName"`
	UserEmail    string     `json:"userEmail"`
}

// Payable reports whether the case can be settled through checkout.
func (c Case) Payable() bool {
	return c.Status == CaseSolutionReady && !c.IsPaid && c.Fee > 0
}

type Feedback struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	FeedbackText string    `json:"feedbackText"`
}

type ContactMessage struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	Reply     string     `json:"reply,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Mineral struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Quality     string  `json:"quality"`
	RoyaltyRate float64 `json:"royaltyRate"`
}

// Order is a server-issued checkout order. Amount is in the smallest currency
// unit (paise for INR), as the gateway expects.
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
	Receipt  string `json:"receipt,omitempty"`
}

type LibraryAccess struct {
	HasAccess             bool       `json:"hasAccess"`
	Reason                string     `json:"reason,omitempty"`
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	TrialEndsAt           *time.Time `json:"trialEndsAt,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
}

type VisitorStats struct {
	TotalVisits    int64 `json:"totalVisits"`
	UniqueVisitors int64 `json:"uniqueVisitors"`
}

type UserPage struct {
	Users    []User `json:"users"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
}
