// AngelaMos | 2026
// dashboard_test.go

package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

func TestBuildDashboard(t *testing.T) {
	trialEnd := now.Add(36 * time.Hour)
	expired := now.Add(-time.Hour)

	tests := []struct {
		name        string
		user        model.User
		label       string
		tier        category.AccessTier
		consultancy bool
		library     bool
		status      string
		trialDays   int
		price       int64
	}{
		{
			name:        "premium in trial",
			user:        model.User{Category: category.Firm, TrialEndsAt: &trialEnd},
			label:       "Firm",
			tier:        category.Premium,
			consultancy: true,
			library:     true,
			status:      "Free trial: 2 days left",
			trialDays:   2,
			price:       20000,
		},
		{
			name:    "academic subscribed",
			user:    model.User{Category: category.Student, HasActiveSubscription: true},
			label:   "Student",
			tier:    category.Academic,
			library: true,
			status:  "Active subscription",
			price:   6000,
		},
		{
			name:        "trial over",
			user:        model.User{Category: category.Company, TrialEndsAt: &expired},
			label:       "Company",
			tier:        category.Premium,
			consultancy: true,
			status:      libraryLockedMessage,
			price:       25000,
		},
		{
			name:   "unknown category",
			user:   model.User{Category: "ASTRONAUT"},
			label:  "ASTRONAUT",
			status: libraryLockedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDashboard(tt.user, now)
			assert.Equal(t, tt.label, d.Label)
			assert.Equal(t, tt.tier, d.Tier)
			assert.Equal(t, tt.consultancy, d.ConsultancyEnabled)
			assert.Equal(t, tt.library, d.LibraryAccess)
			assert.Equal(t, tt.status, d.LibraryStatus)
			assert.Equal(t, tt.trialDays, d.TrialDaysLeft)
			assert.Equal(t, tt.price, d.SubscriptionPrice)
			if tt.consultancy {
				assert.Empty(t, d.ConsultancyMessage)
			} else {
				assert.Equal(t, consultancyLockedMessage, d.ConsultancyMessage)
			}
		})
	}
}

func TestTrialStatusSingular(t *testing.T) {
	assert.Equal(t, "Free trial: 1 day left", trialStatus(1))
}
