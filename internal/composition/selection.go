// Package composition implements the working state of the blend and bundling
// builders: a staging set of product/variant candidates, the committed list of
// composition lines, and the mapping of those lines into the nested request
// payloads the persistence layer consumes.
//
// Everything here is pure data transformation — no I/O, no persistence. The
// blend and bundling services own durability; this package owns the invariants
// (dedup, ordering, quantity clamping) that make a composition well-formed.
package composition

import (
	"strconv"
	"strings"
)

// Candidate is one product/variant pair staged for inclusion in a composition.
// Staging is separate from the committed line list: toggling a candidate never
// touches lines that were already committed.
type Candidate struct {
	ProductID   string
	ProductName string
	VariantID   string
	VariantName string
}

// Key returns the stable composition-line key for this candidate.
func (c Candidate) Key() string { return c.ProductID + "-" + c.VariantID }

// Label returns the human-readable line label ("product — variant").
func (c Candidate) Label() string {
	if c.VariantName == "" {
		return c.ProductName
	}
	return c.ProductName + " — " + c.VariantName
}

// Selection is the ordered staging set of candidates. Toggling the same
// product/variant pair an even number of times leaves the set unchanged.
type Selection struct {
	candidates []Candidate
}

// Toggle adds the pair when absent and removes it when present.
func (s *Selection) Toggle(productID, productName, variantID, variantName string) {
	for i, c := range s.candidates {
		if c.ProductID == productID && c.VariantID == variantID {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			return
		}
	}
	s.candidates = append(s.candidates, Candidate{
		ProductID:   productID,
		ProductName: productName,
		VariantID:   variantID,
		VariantName: variantName,
	})
}

// Contains reports whether the pair is currently staged.
func (s *Selection) Contains(productID, variantID string) bool {
	for _, c := range s.candidates {
		if c.ProductID == productID && c.VariantID == variantID {
			return true
		}
	}
	return false
}

// Candidates returns the staged pairs in insertion order.
func (s *Selection) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Len returns the number of staged pairs.
func (s *Selection) Len() int { return len(s.candidates) }

// Clear empties the staging set.
func (s *Selection) Clear() { s.candidates = nil }

// Line is one committed composition row. ID is unique within a composition and
// no two lines may reference the same variant (ProductDetailID).
type Line struct {
	ID              string
	Label           string
	ProductDetailID string
	Quantity        int
	UnitID          string
}

// Commit merges the staged candidates into the existing line list. A candidate
// whose key already exists is silently dropped — the existing line wins, it is
// not overwritten. Order: existing lines first, new lines in staging order.
// Committing an empty staging set returns the existing lines unchanged.
func Commit(staged []Candidate, existing []Line) []Line {
	if len(staged) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l.ID] = true
	}
	merged := make([]Line, len(existing), len(existing)+len(staged))
	copy(merged, existing)
	for _, c := range staged {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, Line{
			ID:              key,
			Label:           c.Label(),
			ProductDetailID: c.VariantID,
		})
	}
	return merged
}

// RemoveLine filters out the line with the given id. Unknown ids are a no-op.
func RemoveLine(lines []Line, lineID string) []Line {
	out := lines[:0:0]
	for _, l := range lines {
		if l.ID != lineID {
			out = append(out, l)
		}
	}
	return out
}

// SetLineQuantity sets a line's quantity, clamped to zero or above. Unknown
// ids are a no-op.
func SetLineQuantity(lines []Line, lineID string, quantity int) []Line {
	if quantity < 0 {
		quantity = 0
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ID == lineID {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// SetLineUnit assigns a unit to a line. Unknown ids are a no-op.
func SetLineUnit(lines []Line, lineID, unitID string) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ID == lineID {
			out[i].UnitID = unitID
			break
		}
	}
	return out
}

// ParseQuantity converts free-form quantity input into a non-negative int.
// Non-numeric and negative input both coerce to 0.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
