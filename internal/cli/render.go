// AngelaMos | 2026
// render.go

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/category"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/views"
)

const dateLayout = "02 Jan 2006"

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush() //nolint:errcheck // terminal output
}

func renderCategories(w io.Writer) {
	table(w, "CATEGORY\tLABEL\tTIER\tREGISTRATION\tSUBSCRIPTION", func(tw *tabwriter.Writer) {
		for _, info := range category.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
				info.Category, info.Label, info.Tier, info.RegistrationFee, info.SubscriptionFee)
		}
	})
}

func renderDashboard(w io.Writer, d views.Dashboard) {
	fmt.Fprintf(w, "Welcome, %s (%s)\n", d.Name, d.Email)
	fmt.Fprintf(w, "Category:     %s [%s]\n", d.Label, d.Tier)
	fmt.Fprintf(w, "Library:      %s\n", d.LibraryStatus)
	if d.ConsultancyEnabled {
		fmt.Fprintln(w, "Consultancy:  available")
	} else {
		fmt.Fprintf(w, "Consultancy:  %s\n", d.ConsultancyMessage)
	}
	if !d.LibraryAccess && d.SubscriptionPrice > 0 {
		fmt.Fprintf(w, "Subscription: %d INR per year\n", d.SubscriptionPrice)
	}
}

func renderDocuments(w io.Writer, docs []model.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}
	table(w, "ID\tTYPE\tTITLE\tDATE", func(tw *tabwriter.Writer) {
		for _, d := range docs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Type, d.Title, formatDate(d.Date))
		}
	})
}

func renderCases(w io.Writer, cases []model.Case) {
	if len(cases) == 0 {
		fmt.Fprintln(w, "No cases yet.")
		return
	}
	table(w, "ID\tSTATUS\tFEE\tPAID\tISSUE", func(tw *tabwriter.Writer) {
		for _, c := range cases {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\n", c.ID, c.Status, c.Fee, c.IsPaid, truncate(c.Issue, 48))
		}
	})
	for _, c := range cases {
		if c.Solution != "" {
			fmt.Fprintf(w, "\nSolution for %s:\n%s\n", c.ID, c.Solution)
		}
	}
}

func renderNotes(w io.Writer, notes []model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes saved yet.")
		return
	}
	table(w, "ID\tTITLE\tCREATED", func(tw *tabwriter.Writer) {
		for _, n := range notes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.Title, formatDate(n.CreatedAt))
		}
	})
}

func renderDemand(w io.Writer, d views.Demand) {
	table(w, "ITEM\tAMOUNT", func(tw *tabwriter.Writer) {
		rows := []struct {
			label  string
			amount float64
		}{
			{"Royalty", d.Royalty},
			{"Dead rent (quarterly)", d.DeadRent},
			{"DMFT (30%)", d.DMFT},
			{"Interest (monthly)", d.Interest},
			{"NMET (2%)", d.NMET},
			{"IT cess (2%)", d.ITCess},
			{"Management fee", d.ManagementFee},
			{"Environment cess (2%)", d.EnvironmentCess},
			{"Total demand", d.Total},
		}
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%.2f\n", r.label, r.amount)
		}
	})
}

func renderAdmin(w io.Writer, a *views.Admin) {
	users := a.Users()
	fmt.Fprintf(w, "Users: %d (page %d)\n", users.Total, users.Page)
	table(w, "ID\tEMAIL\tCATEGORY\tSUBSCRIBED", func(tw *tabwriter.Writer) {
		for _, u := range users.Users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.ID, u.Email, u.Category, u.HasActiveSubscription)
		}
	})
	fmt.Fprintf(w, "\nDocuments: %d\n", len(a.Documents()))
	fmt.Fprintln(w, "\nCases:")
	renderCases(w, a.Cases())
	fmt.Fprintf(w, "\nFeedback: %d\n", len(a.Feedback()))
	fmt.Fprintln(w, "\nMessages:")
	table(w, "ID\tFROM\tREPLIED\tMESSAGE", func(tw *tabwriter.Writer) {
		for _, m := range a.Contacts() {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", m.ID, m.Email, m.Reply != "", truncate(m.Message, 48))
		}
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
