// AngelaMos | 2026
// outcome.go

package payment

// Outcome is what the checkout reports for an order. The set is closed:
// Succeeded, Dismissed and Failed.
type Outcome interface {
	order() string
}

type Succeeded struct {
	PaymentID string
	OrderID   string
	Signature string
}

type Dismissed struct {
	OrderID string
}

type Failed struct {
	OrderID     string
	Code        string
	Description string
}

func (s Succeeded) order() string { return s.OrderID }
func (d Dismissed) order() string { return d.OrderID }
func (f Failed) order() string    { return f.OrderID }
