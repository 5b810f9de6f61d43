// AngelaMos | 2026
// dashboard.go

package views

import (
	"strconv"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

const (
	consultancyLockedMessage = "Legal consultancy is available to premium categories only."
	libraryLockedMessage     = "Subscribe to unlock the Digital Library."
)

// Dashboard is the landing view model for a signed-in user.
type Dashboard struct {
	Name               string
	Email              string
	Category           category.Category
	Label              string
	Tier               category.AccessTier
	ConsultancyEnabled bool
	ConsultancyMessage string
	LibraryAccess      bool
	LibraryStatus      string
	InTrial            bool
	TrialDaysLeft      int
	SubscriptionPrice  int64
}

func BuildDashboard(u model.User, now time.Time) Dashboard {
	d := Dashboard{
		Name:          u.Name,
		Email:         u.Email,
		Category:      u.Category,
		Label:         string(u.Category),
		LibraryAccess: u.HasLibraryAccess(now),
		InTrial:       u.InTrial(now),
		TrialDaysLeft: u.TrialDaysLeft(now),
	}

	if info, err := category.Lookup(u.Category); err == nil {
		d.Label = info.Label
		d.Tier = info.Tier
		d.SubscriptionPrice = info.SubscriptionFee
	}

	d.ConsultancyEnabled = category.CanAccessConsultancy(u.Category)
	if !d.ConsultancyEnabled {
		d.ConsultancyMessage = consultancyLockedMessage
	}

	switch {
	case u.HasActiveSubscription:
		d.LibraryStatus = "Active subscription"
	case d.InTrial:
		d.LibraryStatus = trialStatus(d.TrialDaysLeft)
	default:
		d.LibraryStatus = libraryLockedMessage
	}
	return d
}

func trialStatus(days int) string {
	if days == 1 {
		return "Free trial: 1 day left"
	}
	return "Free trial: " + strconv.Itoa(days) + " days left"
}
