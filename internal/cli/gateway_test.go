// AngelaMos | 2026
// gateway_test.go

package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/payment"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		line string
		want payment.Outcome
	}{
		{"paid pay_1 abc123", payment.Succeeded{OrderID: "o1", PaymentID: "pay_1", Signature: "abc123"}},
		{"PAID pay_1 abc123\n", payment.Succeeded{OrderID: "o1", PaymentID: "pay_1", Signature: "abc123"}},
		{"paid pay_1", payment.Failed{OrderID: "o1", Code: "BAD_INPUT", Description: "payment id and signature are required"}},
		{"fail card declined by bank", payment.Failed{OrderID: "o1", Code: "PAYMENT_FAILED", Description: "card declined by bank"}},
		{"fail", payment.Failed{OrderID: "o1", Code: "PAYMENT_FAILED", Description: "Payment was declined"}},
		{"dismiss", payment.Dismissed{OrderID: "o1"}},
		{"", payment.Dismissed{OrderID: "o1"}},
		{"whatever", payment.Dismissed{OrderID: "o1"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutcome("o1", tt.line))
		})
	}
}

func TestTerminalGatewayOpen(t *testing.T) {
	var out bytes.Buffer
	g := NewTerminalGateway(bufio.NewReader(strings.NewReader("paid pay_9 sig\n")), &out)

	var got payment.Outcome
	g.Bind(func(_ context.Context, o payment.Outcome) error {
		got = o
		return nil
	})

	err := g.Open(context.Background(), payment.CheckoutConfig{
		Key:         "rzp_test",
		Amount:      2000000,
		Currency:    "INR",
		Name:        "Mines and Minerals Laws",
		Description: "Annual library subscription",
		OrderID:     "order_7",
		Prefill:     payment.Prefill{Name: "Ravi", Email: "ravi@firm.in"},
	})
	require.NoError(t, err)

	assert.Equal(t, payment.Succeeded{OrderID: "order_7", PaymentID: "pay_9", Signature: "sig"}, got)
	assert.Contains(t, out.String(), "amount: 20000.00 INR")
	assert.Contains(t, out.String(), "payer:  Ravi <ravi@firm.in>")
}

func TestTerminalGatewayEOFDismisses(t *testing.T) {
	g := NewTerminalGateway(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})

	var got payment.Outcome
	g.Bind(func(_ context.Context, o payment.Outcome) error {
		got = o
		return nil
	})

	require.NoError(t, g.Open(context.Background(), payment.CheckoutConfig{OrderID: "o2"}))
	assert.Equal(t, payment.Dismissed{OrderID: "o2"}, got)
}

func TestTerminalGatewayUnbound(t *testing.T) {
	g := NewTerminalGateway(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	assert.ErrorIs(t, g.Open(context.Background(), payment.CheckoutConfig{}), errNoResultSink)
}
