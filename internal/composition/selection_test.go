package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleParity(t *testing.T) {
	var sel Selection

	// Odd number of toggles — present; even — absent.
	for i := 1; i <= 5; i++ {
		sel.Toggle("p1", "Lavender Oil", "v1", "30ml")
		assert.Equal(t, i%2 == 1, sel.Contains("p1", "v1"), "after %d toggles", i)
	}
}

func TestToggleKeepsOtherCandidates(t *testing.T) {
	var sel Selection
	sel.Toggle("p1", "Lavender Oil", "v1", "30ml")
	sel.Toggle("p1", "Lavender Oil", "v2", "50ml")
	sel.Toggle("p2", "Rose Absolute", "v3", "30ml")

	sel.Toggle("p1", "Lavender Oil", "v2", "50ml") // remove the middle one

	require.Equal(t, 2, sel.Len())
	cands := sel.Candidates()
	assert.Equal(t, "p1-v1", cands[0].Key())
	assert.Equal(t, "p2-v3", cands[1].Key())
}

func TestCommitDropsDuplicates(t *testing.T) {
	existing := []Line{{ID: "p1-v1", Label: "Lavender Oil — 30ml", ProductDetailID: "v1", Quantity: 2}}
	staged := []Candidate{{ProductID: "p1", ProductName: "Lavender Oil", VariantID: "v1", VariantName: "30ml"}}

	merged := Commit(staged, existing)

	// The duplicate is silently dropped: same length, quantity untouched.
	require.Len(t, merged, 1)
	assert.Equal(t, "p1-v1", merged[0].ID)
	assert.Equal(t, 2, merged[0].Quantity)
}

func TestCommitAppendsNewLinesInOrder(t *testing.T) {
	existing := []Line{{ID: "p1-v1", ProductDetailID: "v1", Quantity: 3}}
	staged := []Candidate{
		{ProductID: "p2", ProductName: "Rose Absolute", VariantID: "v2", VariantName: "30ml"},
		{ProductID: "p1", ProductName: "Lavender Oil", VariantID: "v1", VariantName: "30ml"}, // dup
		{ProductID: "p3", ProductName: "Vetiver Base", VariantID: "v3", VariantName: "100ml"},
	}

	merged := Commit(staged, existing)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"p1-v1", "p2-v2", "p3-v3"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
	assert.Equal(t, "Rose Absolute — 30ml", merged[1].Label)
	assert.Equal(t, "v3", merged[2].ProductDetailID)
}

func TestCommitEmptyStagingIsNoop(t *testing.T) {
	existing := []Line{{ID: "p1-v1", ProductDetailID: "v1", Quantity: 1}}
	assert.Equal(t, existing, Commit(nil, existing))
}

func TestRemoveLine(t *testing.T) {
	lines := []Line{
		{ID: "p1-v1", ProductDetailID: "v1"},
		{ID: "p2-v2", ProductDetailID: "v2"},
	}

	out := RemoveLine(lines, "p1-v1")
	require.Len(t, out, 1)
	assert.Equal(t, "p2-v2", out[0].ID)

	// Unknown id — unchanged.
	assert.Len(t, RemoveLine(out, "missing"), 1)
}

func TestSetLineQuantityClampsNegative(t *testing.T) {
	lines := []Line{{ID: "p1-v1", ProductDetailID: "v1", Quantity: 4}}

	out := SetLineQuantity(lines, "p1-v1", -3)
	assert.Equal(t, 0, out[0].Quantity)

	out = SetLineQuantity(lines, "p1-v1", 7)
	assert.Equal(t, 7, out[0].Quantity)
	// Input slice untouched.
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 12, ParseQuantity("12"))
	assert.Equal(t, 12, ParseQuantity(" 12 "))
	assert.Equal(t, 0, ParseQuantity("abc"))
	assert.Equal(t, 0, ParseQuantity("-4"))
	assert.Equal(t, 0, ParseQuantity(""))
	assert.Equal(t, 0, ParseQuantity("3.5"))
}
