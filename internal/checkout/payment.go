package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Method is the payment method selected at the register.
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodQRIS     Method = "qris"
)

// ParseMethod validates a payment method string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCash, MethodTransfer, MethodQRIS:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// ErrNonDigitTendered is returned when tendered input contains anything but
// digits. Rejection happens at the boundary — the input is never silently
// stripped.
var ErrNonDigitTendered = errors.New("tendered amount accepts digits only")

// ParseTendered converts digit-only register input into a decimal amount.
func ParseTendered(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, ErrNonDigitTendered
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return decimal.Zero, ErrNonDigitTendered
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNonDigitTendered
	}
	return d, nil
}

// ComputeChange returns the change due: zero when tendered does not exceed
// the subtotal, the difference otherwise. Never negative.
func ComputeChange(subtotal, tendered decimal.Decimal) decimal.Decimal {
	if tendered.LessThanOrEqual(subtotal) {
		return decimal.Zero
	}
	return tendered.Sub(subtotal)
}

// Summary is the fully derived payment state: change is a projection of
// subtotal and tendered, never stored on its own.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}

// Payment tracks the method/tendered state of one checkout. Transitions occur
// only on explicit selection: entering transfer or qris fixes tendered to the
// subtotal (read-only), entering cash restores editability without auto-
// filling anything.
type Payment struct {
	subtotal decimal.Decimal
	method   Method
	tendered decimal.Decimal
}

// NewPayment starts a cash payment with nothing tendered yet.
func NewPayment(subtotal decimal.Decimal) *Payment {
	return &Payment{subtotal: subtotal, method: MethodCash}
}

// Select switches the payment method.
func (p *Payment) Select(m Method) {
	p.method = m
	if m != MethodCash {
		p.tendered = p.subtotal
	}
}

// Method returns the currently selected method.
func (p *Payment) Method() Method { return p.method }

// Editable reports whether the tendered amount can be changed.
func (p *Payment) Editable() bool { return p.method == MethodCash }

// SetTendered records a cash tendered amount from raw register input. It is
// rejected for non-cash methods, where tendered is fixed to the subtotal.
func (p *Payment) SetTendered(raw string) error {
	if !p.Editable() {
		return fmt.Errorf("tendered amount is fixed for %s payments", p.method)
	}
	amount, err := ParseTendered(raw)
	if err != nil {
		return err
	}
	p.tendered = amount
	return nil
}

// Sufficient reports whether the tendered amount covers the subtotal.
func (p *Payment) Sufficient() bool { return !p.tendered.LessThan(p.subtotal) }

// Summary derives the current payment summary.
func (p *Payment) Summary() Summary {
	return Summary{
		Subtotal: p.subtotal,
		Tendered: p.tendered,
		Change:   ComputeChange(p.subtotal, p.tendered),
	}
}
