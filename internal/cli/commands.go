// AngelaMos | 2026
// commands.go

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/onboarding"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
	"github.com/rgrams-coder/aicmmlr/internal/views"
)

// UsageError is returned when a command is called with bad arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

type command struct {
	name  string
	usage string
	short string
	run   func(ctx context.Context, a *App, args []string) error
}

func (c command) usageError() error {
	return &UsageError{Usage: strings.TrimSpace(c.name + " " + c.usage)}
}

var commands []command

func init() {
	commands = []command{
		{"state", "", "Show the current screen", cmdState},
		{"categories", "", "List user categories and fees", cmdCategories},
		{"start", "", "Leave the introduction", cmdStart},
		{"login", "[email=<e> password=<p> admin=true]", "Open the login screen or sign in", cmdLogin},
		{"category", "<CATEGORY>", "Pick a category and open registration", cmdCategory},
		{"back", "", "Go back one screen", cmdBack},
		{"register", "name=<n> email=<e> phone=<p> [org=<o>] password=<p> confirm=<p> [category=<C>]", "Create an account", cmdRegister},
		{"verified", "", "Confirm the emailed verification", cmdVerified},
		{"profile", "address=<a> bio=<b> [picture=<url>]", "Complete your profile", cmdProfile},
		{"dashboard", "", "Show your dashboard", cmdDashboard},
		{"library", "[type=<TYPE>] [search=<text>]", "Open the Digital Library", cmdLibrary},
		{"subscribe", "", "Buy the annual library subscription", cmdSubscribe},
		{"consultancy", "", "Open legal consultancy", cmdConsultancy},
		{"case", "issue=<text> [file=<path>]", "Raise a consultancy case", cmdCase},
		{"pay", "<case-id>", "Pay the fee for a solved case", cmdPay},
		{"notes", "", "List your notes", cmdNotes},
		{"note-add", "title=<t> content=<c>", "Save a note", cmdNoteAdd},
		{"note-edit", "<id> title=<t> content=<c>", "Edit a note", cmdNoteEdit},
		{"note-rm", "<id>", "Delete a note", cmdNoteRemove},
		{"calc", "[mineral=<m> quality=<q> quantity=<t> area=<ha>]", "Mining demand calculator", cmdCalc},
		{"feedback", "<text>", "Send feedback", cmdFeedback},
		{"contact", "name=<n> email=<e> message=<m>", "Send a message to the team", cmdContact},
		{"visitors", "", "Show site visitor counters", cmdVisitors},
		{"admin", "", "Load the admin console", cmdAdmin},
		{"admin-users", "[search=<s>] [category=<C>] [page=<n>]", "Search users", cmdAdminUsers},
		{"doc-add", "type=<TYPE> title=<t> [description=<d>] [content=<c>] [file=<path>]", "Add a library document", cmdDocAdd},
		{"doc-edit", "<id> type=<TYPE> title=<t> [description=<d>]", "Edit a library document", cmdDocEdit},
		{"doc-rm", "<id>", "Delete a library document", cmdDocRemove},
		{"solve", "<case-id> fee=<amount> solution=<text>", "Send a solution for a case", cmdSolve},
		{"reply", "<message-id> <text>", "Reply to a contact message", cmdReply},
		{"home", "", "Go to your home screen", cmdHome},
		{"logout", "", "Sign out", cmdLogout},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(name string) error {
	c, _ := lookupCommand(name)
	return c.usageError()
}

func cmdState(_ context.Context, a *App, _ []string) error {
	step := a.Machine.Current()
	a.printf("screen: %s\n", step.Name())
	switch s := step.(type) {
	case onboarding.Login:
		if s.Notice != "" {
			a.printf("%s\n", s.Notice)
		}
	case onboarding.Registration:
		a.printf("category: %s\n", s.Category)
	case onboarding.Verification:
		a.printf("verification sent to %s\n", s.Email)
	}
	return nil
}

func cmdCategories(_ context.Context, a *App, _ []string) error {
	renderCategories(a.out)
	return nil
}

func cmdStart(_ context.Context, a *App, _ []string) error {
	return a.Machine.GetStarted()
}

func cmdLogin(ctx context.Context, a *App, args []string) error {
	kv, _ := keyValues(args)
	if _, ok := a.Machine.Current().(onboarding.Login); !ok {
		if err := a.Machine.GoToLogin(); err != nil {
			return err
		}
	}
	if len(kv) == 0 {
		return nil
	}

	password := kv["password"]
	if password == "" {
		p, err := a.readLine("Password: ")
		if err != nil {
			return err
		}
		password = p
	}

	return a.Machine.SubmitLogin(ctx, onboarding.LoginForm{
		Email:    kv["email"],
		Password: password,
		Admin:    truthy(kv["admin"]),
	})
}

func cmdCategory(_ context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("category")
	}
	c, err := category.Parse(args[0])
	if err != nil {
		return err
	}
	return a.Machine.SelectCategory(c)
}

func cmdBack(_ context.Context, a *App, _ []string) error {
	switch a.Machine.Current().(type) {
	case onboarding.Library, onboarding.Consultancy:
		return a.Machine.BackToDashboard()
	default:
		return a.Machine.BackToLanding()
	}
}

func cmdRegister(ctx context.Context, a *App, args []string) error {
	kv, _ := keyValues(args)
	if raw, ok := kv["category"]; ok {
		c, err := category.Parse(raw)
		if err != nil {
			return err
		}
		if _, at := a.Machine.Current().(onboarding.Registration); !at {
			if _, login := a.Machine.Current().(onboarding.Login); login {
				if err := a.Machine.BackToLanding(); err != nil {
					return err
				}
			}
			if err := a.Machine.SelectCategory(c); err != nil {
				return err
			}
		}
	}

	return a.Machine.SubmitRegistration(ctx, onboarding.RegistrationForm{
		Name:            kv["name"],
		Email:           kv["email"],
		Phone:           kv["phone"],
		Organization:    kv["org"],
		Password:        kv["password"],
		ConfirmPassword: kv["confirm"],
	})
}

func cmdVerified(_ context.Context, a *App, _ []string) error {
	return a.Machine.Verified()
}

// cmdProfile accepts the profile form from the verification screen too:
// the terminal has no separate confirmation link to click.
func cmdProfile(ctx context.Context, a *App, args []string) error {
	if _, ok := a.Machine.Current().(onboarding.Verification); ok {
		if err := a.Machine.Verified(); err != nil {
			return err
		}
	}
	kv, _ := keyValues(args)
	return a.Machine.SubmitProfile(ctx, onboarding.ProfileForm{
		Address:        kv["address"],
		Bio:            kv["bio"],
		ProfilePicture: kv["picture"],
	})
}

func cmdDashboard(_ context.Context, a *App, _ []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	renderDashboard(a.out, views.BuildDashboard(a.Session.CurrentUser(), a.Session.Now()))
	return nil
}

func cmdLibrary(ctx context.Context, a *App, args []string) error {
	if _, ok := a.Machine.Current().(onboarding.Dashboard); ok {
		if err := a.Machine.EnterLibrary(); err != nil {
			return err
		}
	}
	if _, ok := a.Machine.Current().(onboarding.Library); !ok {
		return nil
	}

	if err := a.Library.Mount(ctx); err != nil {
		if errors.Is(err, views.ErrAccessDenied) {
			a.printf("Run \"subscribe\" to unlock the library.\n")
			return nil
		}
		return err
	}

	kv, _ := keyValues(args)
	t := model.DocumentType(strings.ToUpper(kv["type"]))
	renderDocuments(a.out, a.Library.Filter(t, kv["search"]))
	return nil
}

func cmdSubscribe(ctx context.Context, a *App, _ []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	_, err := a.Library.Subscribe(ctx)
	return err
}

func cmdConsultancy(ctx context.Context, a *App, _ []string) error {
	if _, ok := a.Machine.Current().(onboarding.Dashboard); ok {
		if err := a.Machine.EnterConsultancy(); err != nil {
			return err
		}
	}
	if _, ok := a.Machine.Current().(onboarding.Consultancy); !ok {
		return nil
	}
	if err := a.Consultancy.Mount(ctx); err != nil {
		return err
	}
	renderCases(a.out, a.Consultancy.Cases())
	return nil
}

func cmdCase(ctx context.Context, a *App, args []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	kv, _ := keyValues(args)

	upload, closeFile, err := openUpload(kv["file"])
	if err != nil {
		return err
	}
	defer closeFile()

	created, err := a.Consultancy.Submit(ctx, kv["issue"], upload)
	if err != nil {
		return err
	}
	a.printf("case %s created\n", created.ID)
	renderCases(a.out, a.Consultancy.Cases())
	return nil
}

func cmdPay(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("pay")
	}
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	if len(a.Consultancy.Cases()) == 0 {
		if err := a.Consultancy.Mount(ctx); err != nil {
			return err
		}
	}
	if _, err := a.Consultancy.Pay(ctx, args[0]); err != nil {
		return err
	}
	renderCases(a.out, a.Consultancy.Cases())
	return nil
}

func cmdNotes(ctx context.Context, a *App, _ []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	if err := a.Notes.Mount(ctx); err != nil {
		return err
	}
	renderNotes(a.out, a.Notes.Notes())
	return nil
}

func cmdNoteAdd(ctx context.Context, a *App, args []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	kv, _ := keyValues(args)
	if _, err := a.Notes.Create(ctx, client.NoteInput{Title: kv["title"], Content: kv["content"]}); err != nil {
		return err
	}
	renderNotes(a.out, a.Notes.Notes())
	return nil
}

func cmdNoteEdit(ctx context.Context, a *App, args []string) error {
	kv, rest := keyValues(args)
	if len(rest) != 1 {
		return usage("note-edit")
	}
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	if _, err := a.Notes.Update(ctx, rest[0], client.NoteInput{Title: kv["title"], Content: kv["content"]}); err != nil {
		return err
	}
	renderNotes(a.out, a.Notes.Notes())
	return nil
}

func cmdNoteRemove(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("note-rm")
	}
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	return a.Notes.Delete(ctx, args[0])
}

func cmdCalc(ctx context.Context, a *App, args []string) error {
	if err := a.Calculator.Mount(ctx); err != nil {
		return err
	}

	kv, _ := keyValues(args)
	if kv["mineral"] == "" {
		for _, m := range a.Calculator.Minerals() {
			a.printf("%s: %s\n", m, strings.Join(a.Calculator.Qualities(m), ", "))
		}
		return nil
	}

	quantity, err := parseFloat(kv, "quantity")
	if err != nil {
		return err
	}
	area, err := parseFloat(kv, "area")
	if err != nil {
		return err
	}

	d, err := a.Calculator.Calculate(views.DemandInput{
		Mineral:  kv["mineral"],
		Quality:  kv["quality"],
		Quantity: quantity,
		Area:     area,
	})
	if err != nil {
		return err
	}
	a.printf("Royalty rate: %.2f per tonne\n", d.RoyaltyRate)
	renderDemand(a.out, d)
	return nil
}

func cmdFeedback(ctx context.Context, a *App, args []string) error {
	if err := a.requireSignedIn(); err != nil {
		return err
	}
	_, err := a.Support.SubmitFeedback(ctx, strings.Join(args, " "))
	return err
}

func cmdContact(ctx context.Context, a *App, args []string) error {
	kv, _ := keyValues(args)
	_, err := a.Support.SubmitContact(ctx, client.ContactInput{
		Name:    kv["name"],
		Email:   kv["email"],
		Message: kv["message"],
	})
	return err
}

func cmdVisitors(ctx context.Context, a *App, _ []string) error {
	stats, err := a.Visitors.Track(ctx)
	if err != nil {
		return err
	}
	a.printf("visits: %d  unique visitors: %d\n", stats.TotalVisits, stats.UniqueVisitors)
	return nil
}

func cmdAdmin(ctx context.Context, a *App, _ []string) error {
	if err := a.Admin.Mount(ctx); err != nil {
		return err
	}
	renderAdmin(a.out, a.Admin)
	return nil
}

func cmdAdminUsers(ctx context.Context, a *App, args []string) error {
	kv, _ := keyValues(args)
	q := client.UserQuery{Search: kv["search"], Limit: 20}
	if raw := kv["category"]; raw != "" {
		c, err := category.Parse(raw)
		if err != nil {
			return err
		}
		q.Category = c
	}
	if raw := kv["page"]; raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return usage("admin-users")
		}
		q.Page = page
	}

	if err := a.Admin.SearchUsers(ctx, q); err != nil {
		return err
	}
	renderAdmin(a.out, a.Admin)
	return nil
}

func cmdDocAdd(ctx context.Context, a *App, args []string) error {
	kv, _ := keyValues(args)
	upload, closeFile, err := openUpload(kv["file"])
	if err != nil {
		return err
	}
	defer closeFile()

	doc, err := a.Admin.AddDocument(ctx, documentInput(kv), upload)
	if err != nil {
		return err
	}
	a.printf("document %s added\n", doc.ID)
	renderDocuments(a.out, a.Admin.Documents())
	return nil
}

func cmdDocEdit(ctx context.Context, a *App, args []string) error {
	kv, rest := keyValues(args)
	if len(rest) != 1 {
		return usage("doc-edit")
	}
	if _, err := a.Admin.UpdateDocument(ctx, rest[0], documentInput(kv)); err != nil {
		return err
	}
	renderDocuments(a.out, a.Admin.Documents())
	return nil
}

func cmdDocRemove(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return usage("doc-rm")
	}
	if err := a.Admin.DeleteDocument(ctx, args[0]); err != nil {
		return err
	}
	renderDocuments(a.out, a.Admin.Documents())
	return nil
}

func cmdSolve(ctx context.Context, a *App, args []string) error {
	kv, rest := keyValues(args)
	if len(rest) != 1 {
		return usage("solve")
	}
	fee, err := strconv.ParseInt(kv["fee"], 10, 64)
	if err != nil {
		return usage("solve")
	}
	if _, err := a.Admin.SolveCase(ctx, rest[0], kv["solution"], fee); err != nil {
		return err
	}
	renderCases(a.out, a.Admin.Cases())
	return nil
}

func cmdReply(ctx context.Context, a *App, args []string) error {
	if len(args) < 2 {
		return usage("reply")
	}
	_, err := a.Admin.ReplyContact(ctx, args[0], strings.Join(args[1:], " "))
	return err
}

func cmdHome(_ context.Context, a *App, _ []string) error {
	a.Machine.NavigateHome()
	return nil
}

func cmdLogout(ctx context.Context, a *App, _ []string) error {
	if err := a.Machine.Logout(ctx); err != nil {
		return err
	}
	a.printf("Signed out.\n")
	return nil
}

var errNotSignedIn = errors.New("please log in first")

func (a *App) requireSignedIn() error {
	if !a.Session.IsAuthenticated() {
		return errNotSignedIn
	}
	return nil
}

func documentInput(kv map[string]string) client.DocumentInput {
	return client.DocumentInput{
		Type:        model.DocumentType(strings.ToUpper(kv["type"])),
		Title:       kv["title"],
		Description: kv["description"],
		Content:     kv["content"],
	}
}

func openUpload(path string) (*client.Upload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}
	return &client.Upload{Name: filepath.Base(path), Content: f}, func() { _ = f.Close() }, nil
}

func parseFloat(kv map[string]string, key string) (float64, error) {
	raw := kv[key]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, usage("calc")
	}
	return v, nil
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// userFacing reports whether err has not already been shown through the
// notifier and should be printed by the caller.
func userFacing(err error) bool {
	var ue *UsageError
	var pe *os.PathError
	switch {
	case errors.As(err, &ue), errors.As(err, &pe):
		return true
	case errors.Is(err, onboarding.ErrInvalidTransition),
		errors.Is(err, errNotSignedIn),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, views.ErrForbidden),
		errors.Is(err, views.ErrNotFound),
		errors.Is(err, views.ErrNotPayable),
		errors.Is(err, payment.ErrInvalidRequest),
		errors.Is(err, errUnterminatedQuote):
		return true
	}
	return false
}
