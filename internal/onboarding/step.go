// AngelaMos | 2026
// step.go

package onboarding

import (
	"github.com/rgrams-coder/aicmmlr/internal/category"
)

// Step is one screen of the client. Each step carries only the data that
// screen needs; the set of steps is closed.
type Step interface {
	Name() string
	isStep()
}

type Introduction struct{}

type Landing struct{}

// Login optionally carries a notice shown above the form, such as the
// session-expired message.
type Login struct {
	Notice string
}

type Registration struct {
	Category category.Category
}

type Verification struct {
	Email    string
	Category category.Category
}

type Profile struct {
	Email    string
	Category category.Category
}

type Dashboard struct{}

type Library struct{}

type Consultancy struct{}

type Admin struct{}

func (Introduction) Name() string { return "introduction" }
func (Landing) Name() string      { return "landing" }
func (Login) Name() string        { return "login" }
func (Registration) Name() string { return "registration" }
func (Verification) Name() string { return "verification" }
func (Profile) Name() string      { return "profile" }
func (Dashboard) Name() string    { return "dashboard" }
func (Library) Name() string      { return "library" }
func (Consultancy) Name() string  { return "consultancy" }
func (Admin) Name() string        { return "admin" }

func (Introduction) isStep() {}
func (Landing) isStep()      {}
func (Login) isStep()        {}
func (Registration) isStep() {}
func (Verification) isStep() {}
func (Profile) isStep()      {}
func (Dashboard) isStep()    {}
func (Library) isStep()      {}
func (Consultancy) isStep()  {}
func (Admin) isStep()        {}
