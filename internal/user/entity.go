// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type User struct {
	ID                    string     `db:"id"`
	Email                 string     `db:"email"`
	PasswordHash          string     `db:"password_hash"`
	Name                  string     `db:"name"`
	Phone                 string     `db:"phone"`
	Organization          string     `db:"organization"`
	Category              string     `db:"category"`
	Address               string     `db:"address"`
	Bio                   string     `db:"bio"`
	ProfilePicture        string     `db:"profile_picture"`
	Role                  string     `db:"role"`
	RegistrationPaid      bool       `db:"registration_paid"`
	HasActiveSubscription bool       `db:"has_active_subscription"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at"`
	TrialEndsAt           *time.Time `db:"trial_ends_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SubscriptionActive treats a lapsed expiry as no subscription even if the
// flag was never cleared.
func (u *User) SubscriptionActive(now time.Time) bool {
	if !u.HasActiveSubscription {
		return false
	}
	return u.SubscriptionExpiresAt == nil || now.Before(*u.SubscriptionExpiresAt)
}

func (u *User) ToModel(now time.Time) model.User {
	return model.User{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		Phone:                 u.Phone,
		Organization:          u.Organization,
		Category:              category.Category(u.Category),
		Address:               u.Address,
		Bio:                   u.Bio,
		ProfilePicture:        u.ProfilePicture,
		Role:                  u.Role,
		HasActiveSubscription: u.SubscriptionActive(now),
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		TrialEndsAt:           u.TrialEndsAt,
		RegistrationPaid:      u.RegistrationPaid,
		CreatedAt:             u.CreatedAt,
	}
}

const (
	RoleUser  = model.RoleUser
	RoleAdmin = model.RoleAdmin
)
