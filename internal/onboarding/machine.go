// AngelaMos | 2026
// machine.go

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
	"github.com/rgrams-coder/aicmmlr/internal/session"
)

const SessionExpiredMessage = "Your session has expired. Please log in again."

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrSessionExpired    = errors.New("session expired")
)

type API interface {
	Login(ctx context.Context, creds client.Credentials) (model.AuthResponse, error)
	AdminLogin(ctx context.Context, creds client.Credentials) (model.AuthResponse, error)
	Register(ctx context.Context, reg client.Registration) (model.AuthResponse, error)
	GetProfile(ctx context.Context) (model.User, error)
	UpdateProfile(ctx context.Context, p client.ProfileUpdate) (model.User, error)
}

type Payments interface {
	Initiate(ctx context.Context, req payment.Request) (payment.CheckoutConfig, error)
}

type unauthorizedHooker interface {
	SetUnauthorizedHandler(fn func(context.Context))
}

type Option func(*Machine)

// WithMinimalStart skips the introduction screen.
func WithMinimalStart() Option {
	return func(m *Machine) {
		m.start = Landing{}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

type Machine struct {
	api      API
	session  *session.Store
	payments Payments
	notifier notify.Notifier
	validate *validator.Validate
	logger   *slog.Logger
	flight   singleflight.Group

	start Step

	mu        sync.Mutex
	step      Step
	observers []func(Step)
}

// New builds the machine and, when api supports it, installs the 401 hook
// that ends the session.
func New(
	api API,
	sess *session.Store,
	payments Payments,
	notifier notify.Notifier,
	opts ...Option,
) *Machine {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	m := &Machine{
		api:      api,
		session:  sess,
		payments: payments,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default(),
		start:    Introduction{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.step = m.start

	if h, ok := api.(unauthorizedHooker); ok {
		h.SetUnauthorizedHandler(m.HandleUnauthorized)
	}
	return m
}

func (m *Machine) Current() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Subscribe registers fn to run after every step change.
func (m *Machine) Subscribe(fn func(Step)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

func (m *Machine) GetStarted() error {
	return m.move("get started", func(s Step) (Step, bool) {
		_, ok := s.(Introduction)
		return Landing{}, ok
	})
}

func (m *Machine) GoToLogin() error {
	return m.move("go to login", func(s Step) (Step, bool) {
		switch s.(type) {
		case Introduction, Landing, Registration:
			return Login{}, true
		}
		return nil, false
	})
}

func (m *Machine) SelectCategory(c category.Category) error {
	if !c.Valid() {
		return fmt.Errorf("select category %q: %w", c, category.ErrNotFound)
	}
	return m.move("select category", func(s Step) (Step, bool) {
		switch s.(type) {
		case Introduction, Landing:
			return Registration{Category: c}, true
		}
		return nil, false
	})
}

func (m *Machine) BackToLanding() error {
	return m.move("back to landing", func(s Step) (Step, bool) {
		switch s.(type) {
		case Login, Registration:
			return Landing{}, true
		}
		return nil, false
	})
}

func (m *Machine) SubmitLogin(ctx context.Context, form LoginForm) error {
	from, ok := m.Current().(Login)
	if !ok {
		return m.invalid("submit login")
	}

	form.normalize()
	if err := m.checkForm(&form); err != nil {
		return err
	}

	_, err, _ := m.flight.Do("login", func() (any, error) {
		creds := client.Credentials{Email: form.Email, Password: form.Password}

		var resp model.AuthResponse
		var err error
		if form.Admin {
			resp, err = m.api.AdminLogin(ctx, creds)
		} else {
			resp, err = m.api.Login(ctx, creds)
		}
		if err != nil {
			m.notifier.Notify(notify.FromError(err, "Login failed. Please try again."))
			return nil, fmt.Errorf("login: %w", err)
		}
		if resp.Token == "" {
			m.notifier.Notify(notify.Notice{Kind: notify.Error, Message: "Login failed. Please try again."})
			return nil, fmt.Errorf("login: %w", session.ErrMalformedToken)
		}

		if err := m.session.SetSession(ctx, resp.Token, resp.User); err != nil {
			m.notifier.Notify(notify.Notice{Kind: notify.Error, Message: "Login failed. Please try again."})
			return nil, fmt.Errorf("login: %w", err)
		}

		var next Step = Dashboard{}
		if m.session.IsAdmin() {
			next = Admin{}
		}
		m.transitionFrom(from, next)
		return nil, nil
	})
	return err
}

func (m *Machine) SubmitRegistration(ctx context.Context, form RegistrationForm) error {
	from, ok := m.Current().(Registration)
	if !ok {
		return m.invalid("submit registration")
	}

	form.normalize()
	if err := m.checkForm(&form); err != nil {
		return err
	}

	_, err, _ := m.flight.Do("register", func() (any, error) {
		resp, err := m.api.Register(ctx, client.Registration{
			Name:         form.Name,
			Email:        form.Email,
			Phone:        form.Phone,
			Organization: form.Organization,
			Password:     form.Password,
			Category:     from.Category,
		})
		if err != nil {
			m.notifier.Notify(notify.FromError(err, "Registration failed. Please try again."))
			return nil, fmt.Errorf("register: %w", err)
		}

		user := resp.User
		if user.Email == "" {
			user.Email = form.Email
			user.Name = form.Name
			user.Phone = form.Phone
			user.Organization = form.Organization
		}
		if user.Category == "" {
			user.Category = from.Category
		}
		if user.ID == "" {
			user.ID = "temp-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
		}

		issued := false
		if resp.Token != "" {
			if err := m.session.SetSession(ctx, resp.Token, user); err != nil {
				m.logger.WarnContext(ctx, "registration token rejected", "error", err)
				m.session.SetUser(user)
			} else {
				issued = true
			}
		} else {
			m.session.SetUser(user)
		}

		if !m.transitionFrom(from, Verification{Email: user.Email, Category: from.Category}) {
			return nil, nil
		}

		if issued {
			m.chargeRegistrationFee(ctx, from.Category)
		}
		return nil, nil
	})
	return err
}

func (m *Machine) chargeRegistrationFee(ctx context.Context, c category.Category) {
	if m.payments == nil {
		return
	}
	fee, err := category.RegistrationFee(c)
	if err != nil {
		m.logger.ErrorContext(ctx, "registration fee lookup", "category", c, "error", err)
		return
	}
	info, _ := category.Lookup(c) //nolint:errcheck // looked up above

	if _, err := m.payments.Initiate(ctx, payment.Request{
		Purpose:     payment.PurposeRegistration,
		Amount:      fee,
		Description: "Registration fee for " + info.Label,
	}); err != nil {
		m.logger.WarnContext(ctx, "registration fee checkout not opened", "error", err)
	}
}

// Verified is raised once the external email/OTP confirmation succeeds.
func (m *Machine) Verified() error {
	return m.move("verified", func(s Step) (Step, bool) {
		v, ok := s.(Verification)
		return Profile(v), ok
	})
}

func (m *Machine) SubmitProfile(ctx context.Context, form ProfileForm) error {
	from, ok := m.Current().(Profile)
	if !ok {
		return m.invalid("submit profile")
	}

	form.normalize()
	if err := m.checkForm(&form); err != nil {
		return err
	}

	if !m.session.IsAuthenticated() {
		m.HandleUnauthorized(ctx)
		return fmt.Errorf("submit profile: %w", ErrSessionExpired)
	}

	_, err, _ := m.flight.Do("profile", func() (any, error) {
		if _, err := m.api.UpdateProfile(ctx, client.ProfileUpdate{
			Address:        form.Address,
			Bio:            form.Bio,
			ProfilePicture: form.ProfilePicture,
		}); err != nil {
			m.notifyUnlessExpired(err, "Failed to update profile. Please try again.")
			return nil, fmt.Errorf("update profile: %w", err)
		}

		user, err := m.api.GetProfile(ctx)
		if err != nil {
			m.notifyUnlessExpired(err, "Failed to load profile. Please try again.")
			return nil, fmt.Errorf("refresh profile: %w", err)
		}
		m.session.SetUser(user)

		m.transitionFrom(from, Dashboard{})
		return nil, nil
	})
	return err
}

// EnterLibrary is advisory: without access it leaves the step unchanged and
// tells the user why. The server enforces the same rule.
func (m *Machine) EnterLibrary() error {
	if _, ok := m.Current().(Dashboard); !ok {
		return m.invalid("enter library")
	}
	if !m.session.CurrentUser().HasActiveSubscription {
		m.notifier.Notify(notify.Notice{
			Kind:    notify.Info,
			Message: "An active library subscription is required to open the Digital Library.",
		})
		return nil
	}
	m.transitionFrom(Dashboard{}, Library{})
	return nil
}

func (m *Machine) EnterConsultancy() error {
	if _, ok := m.Current().(Dashboard); !ok {
		return m.invalid("enter consultancy")
	}
	if !category.CanAccessConsultancy(m.userCategory()) {
		m.notifier.Notify(notify.Notice{
			Kind:    notify.Info,
			Message: "Legal consultancy is available to premium categories only.",
		})
		return nil
	}
	m.transitionFrom(Dashboard{}, Consultancy{})
	return nil
}

func (m *Machine) BackToDashboard() error {
	return m.move("back to dashboard", func(s Step) (Step, bool) {
		switch s.(type) {
		case Library, Consultancy:
			return Dashboard{}, true
		}
		return nil, false
	})
}

// NavigateHome sends a signed-in user to their home screen and everyone
// else to the start.
func (m *Machine) NavigateHome() {
	var next Step
	switch {
	case m.session.IsAuthenticated() && m.session.IsAdmin():
		next = Admin{}
	case m.session.IsAuthenticated() && m.session.IsFullyOnboarded():
		next = Dashboard{}
	default:
		next = m.start
	}
	m.set(next)
}

func (m *Machine) Logout(ctx context.Context) error {
	err := m.session.Clear(ctx)
	m.set(m.start)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

type restoreKey struct{}

func isRestore(ctx context.Context) bool {
	v, _ := ctx.Value(restoreKey{}).(bool)
	return v
}

// HandleUnauthorized ends the session after a 401 and forces the login step.
// A rejected restore request only clears the session.
func (m *Machine) HandleUnauthorized(ctx context.Context) {
	if err := m.session.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear session after 401", "error", err)
	}
	if isRestore(ctx) {
		return
	}
	m.set(Login{Notice: SessionExpiredMessage})
	m.notifier.Notify(notify.Notice{Kind: notify.Session, Message: SessionExpiredMessage})
}

// Restore rehydrates the session on start. A missing, expired or rejected
// token leaves the machine at its start step.
func (m *Machine) Restore(ctx context.Context) error {
	if err := m.session.Load(ctx); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if !m.session.IsAuthenticated() {
		return nil
	}

	user, err := m.api.GetProfile(context.WithValue(ctx, restoreKey{}, true))
	if err != nil {
		if client.IsUnauthorized(err) {
			m.logger.InfoContext(ctx, "persisted session rejected")
			return nil
		}
		return fmt.Errorf("restore profile: %w", err)
	}
	if !m.session.IsAuthenticated() {
		return nil
	}
	m.session.SetUser(user)

	switch {
	case m.session.IsAdmin():
		m.set(Admin{})
	case user.IsOnboarded():
		m.set(Dashboard{})
	default:
		m.set(Verification{Email: user.Email, Category: user.Category})
	}
	return nil
}

func (m *Machine) userCategory() category.Category {
	if c := m.session.CurrentUser().Category; c != "" {
		return c
	}
	c, _ := category.Parse(m.session.Claims().Category) //nolint:errcheck // unknown stays empty
	return c
}

func (m *Machine) checkForm(form any) error {
	if err := validateForm(m.validate, form); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			m.notifier.Notify(notify.Notice{Kind: notify.Validation, Message: ve.Message})
		}
		return err
	}
	return nil
}

func (m *Machine) notifyUnlessExpired(err error, fallback string) {
	if client.IsUnauthorized(err) {
		return
	}
	m.notifier.Notify(notify.FromError(err, fallback))
}

func (m *Machine) invalid(event string) error {
	return fmt.Errorf("%s from %s: %w", event, m.Current().Name(), ErrInvalidTransition)
}

func (m *Machine) move(event string, next func(Step) (Step, bool)) error {
	m.mu.Lock()
	to, ok := next(m.step)
	if !ok {
		name := m.step.Name()
		m.mu.Unlock()
		return fmt.Errorf("%s from %s: %w", event, name, ErrInvalidTransition)
	}
	m.step = to
	observers := m.observers
	m.mu.Unlock()

	notifyObservers(observers, to)
	return nil
}

// transitionFrom moves to next only if the machine is still at from, so a
// late response cannot override a transition made meanwhile (e.g. a 401).
func (m *Machine) transitionFrom(from, next Step) bool {
	m.mu.Lock()
	if m.step != from {
		m.mu.Unlock()
		return false
	}
	m.step = next
	observers := m.observers
	m.mu.Unlock()

	notifyObservers(observers, next)
	return true
}

func (m *Machine) set(next Step) {
	m.mu.Lock()
	m.step = next
	observers := m.observers
	m.mu.Unlock()

	notifyObservers(observers, next)
}

func notifyObservers(observers []func(Step), s Step) {
	for _, fn := range observers {
		fn(s)
	}
}
