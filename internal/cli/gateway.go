// AngelaMos | 2026
// gateway.go

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

var errNoResultSink = errors.New("terminal gateway is not bound to a payment adapter")

// TerminalGateway stands in for the hosted checkout. It prints the order and
// reads the checkout result from the terminal:
//
//	paid <payment_id> <signature>
//	fail <description>
//	dismiss
type TerminalGateway struct {
	in   *bufio.Reader
	out  io.Writer
	sink func(context.Context, payment.Outcome) error
}

func NewTerminalGateway(in *bufio.Reader, out io.Writer) *TerminalGateway {
	return &TerminalGateway{in: in, out: out}
}

// Bind sets where checkout results are delivered.
func (g *TerminalGateway) Bind(sink func(context.Context, payment.Outcome) error) {
	g.sink = sink
}

func (g *TerminalGateway) Open(ctx context.Context, cfg payment.CheckoutConfig) error {
	if g.sink == nil {
		return errNoResultSink
	}

	fmt.Fprintf(g.out, "\n%s checkout\n", cfg.Name)
	fmt.Fprintf(g.out, "  %s\n", cfg.Description)
	fmt.Fprintf(g.out, "  order:  %s\n", cfg.OrderID)
	fmt.Fprintf(g.out, "  amount: %s %s\n", formatMinor(cfg.Amount), cfg.Currency)
	fmt.Fprintf(g.out, "  key:    %s\n", cfg.Key)
	if cfg.Prefill.Email != "" {
		fmt.Fprintf(g.out, "  payer:  %s <%s>\n", cfg.Prefill.Name, cfg.Prefill.Email)
	}
	fmt.Fprint(g.out, "result (paid <payment_id> <signature> | fail <reason> | dismiss): ")

	line, err := g.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		line = "dismiss"
	}

	_ = g.sink(ctx, ParseOutcome(cfg.OrderID, line)) //nolint:errcheck // reported through the notifier
	return nil
}

// ParseOutcome turns a typed checkout result into an outcome for orderID.
// Anything unrecognised counts as the user closing the checkout.
func ParseOutcome(orderID, line string) payment.Outcome {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return payment.Dismissed{OrderID: orderID}
	}

	switch strings.ToLower(fields[0]) {
	case "paid":
		if len(fields) < 3 {
			return payment.Failed{OrderID: orderID, Code: "BAD_INPUT", Description: "payment id and signature are required"}
		}
		return payment.Succeeded{OrderID: orderID, PaymentID: fields[1], Signature: fields[2]}
	case "fail", "failed":
		desc := strings.TrimSpace(strings.Join(fields[1:], " "))
		if desc == "" {
			desc = "Payment was declined"
		}
		return payment.Failed{OrderID: orderID, Code: "PAYMENT_FAILED", Description: desc}
	default:
		return payment.Dismissed{OrderID: orderID}
	}
}

// formatMinor renders an amount in the smallest currency unit as units with
// two decimals.
func formatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
