package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChange(t *testing.T) {
	cases := []struct {
		subtotal, tendered, change int64
	}{
		{100000, 150000, 50000},
		{100000, 100000, 0},
		{100000, 50000, 0}, // never negative
		{0, 0, 0},
	}
	for _, tc := range cases {
		got := ComputeChange(decimal.NewFromInt(tc.subtotal), decimal.NewFromInt(tc.tendered))
		assert.True(t, got.Equal(decimal.NewFromInt(tc.change)),
			"subtotal=%d tendered=%d: got %s", tc.subtotal, tc.tendered, got)
	}
}

func TestParseTenderedRejectsNonDigits(t *testing.T) {
	for _, bad := range []string{"", "12a", "-5", "1.5", " 10", "10 "} {
		_, err := ParseTendered(bad)
		assert.ErrorIs(t, err, ErrNonDigitTendered, "input %q", bad)
	}

	got, err := ParseTendered("150000")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(150000)))
}

func TestPaymentMethodTransitions(t *testing.T) {
	p := NewPayment(decimal.NewFromInt(100000))

	// Cash by default: editable, nothing auto-filled.
	assert.Equal(t, MethodCash, p.Method())
	assert.True(t, p.Editable())
	assert.True(t, p.Summary().Tendered.IsZero())

	require.NoError(t, p.SetTendered("150000"))
	assert.True(t, p.Summary().Change.Equal(decimal.NewFromInt(50000)))

	// Transfer fixes tendered to the subtotal, read-only.
	p.Select(MethodTransfer)
	assert.False(t, p.Editable())
	assert.True(t, p.Summary().Tendered.Equal(decimal.NewFromInt(100000)))
	assert.True(t, p.Summary().Change.IsZero())
	assert.Error(t, p.SetTendered("200000"))

	// QRIS behaves the same.
	p.Select(MethodQRIS)
	assert.True(t, p.Summary().Tendered.Equal(decimal.NewFromInt(100000)))

	// Back to cash: editable again, no auto-fill reset.
	p.Select(MethodCash)
	assert.True(t, p.Editable())
	require.NoError(t, p.SetTendered("99000"))
	assert.False(t, p.Sufficient())
	assert.True(t, p.Summary().Change.IsZero())
}

func TestParseMethod(t *testing.T) {
	for _, ok := range []string{"cash", "transfer", "qris"} {
		m, err := ParseMethod(ok)
		require.NoError(t, err)
		assert.Equal(t, Method(ok), m)
	}
	_, err := ParseMethod("credit")
	assert.Error(t, err)
}

func TestSequencerDiscardsStaleResponses(t *testing.T) {
	var seq Sequencer

	first := seq.Next()
	second := seq.Next()

	// The newer request's token wins; the older response is stale.
	assert.False(t, seq.Latest(first))
	assert.True(t, seq.Latest(second))

	third := seq.Next()
	assert.False(t, seq.Latest(second))
	assert.True(t, seq.Latest(third))
}
