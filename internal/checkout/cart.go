// Package checkout implements the line-item aggregation and payment math of
// the outlet register: merging selected variants and bundlings into a
// deduplicated cart, keeping the grand total consistent with the line list,
// and deriving change due from the tendered amount.
//
// Totals are projections — TotalPrice is always price×qty and the grand total
// is always recomputed from the flat list, never patched incrementally.
package checkout

import "github.com/shopspring/decimal"

// LineItem is one row of the register cart. Key is the variant id or, for
// bundlings, the bundling id. TotalPrice is derived from Price and Qty and
// must never drift from them.
type LineItem struct {
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Qty             int             `json:"qty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Stock           int             `json:"stock"`
	UnitCode        string          `json:"unit_code"`
	IsBundling      bool            `json:"is_bundling"`
	ParentProductID string          `json:"parent_product_id"`
}

// AddBatch merges incoming items into the existing list. Items whose key is
// already present are left untouched — re-adding never resets quantity. New
// items enter with qty 1 and are appended after the existing ones.
func AddBatch(existing, incoming []LineItem) []LineItem {
	keyed := make(map[string]bool, len(existing))
	for _, it := range existing {
		keyed[it.Key] = true
	}
	merged := make([]LineItem, len(existing), len(existing)+len(incoming))
	copy(merged, existing)
	for _, it := range incoming {
		if keyed[it.Key] {
			continue
		}
		keyed[it.Key] = true
		it.Qty = 1
		it.TotalPrice = it.Price
		merged = append(merged, it)
	}
	return merged
}

// Remove filters out the item with the given key. Absent keys are a no-op.
func Remove(items []LineItem, key string) []LineItem {
	out := items[:0:0]
	for _, it := range items {
		if it.Key != key {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity sets one item's quantity, clamped to [0, stock], and recomputes
// that item's total. Clearing the quantity to 0 removes the row entirely.
// All other items are untouched.
func SetQuantity(items []LineItem, key string, qty int) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Key != key {
			continue
		}
		if qty < 0 {
			qty = 0
		}
		if qty > out[i].Stock {
			qty = out[i].Stock
		}
		if qty == 0 {
			return Remove(out, key)
		}
		out[i].Qty = qty
		out[i].TotalPrice = out[i].Price.Mul(decimal.NewFromInt(int64(qty)))
		break
	}
	return out
}

// GrandTotal sums the line totals. Full recomputation on every call.
func GrandTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// Group is a read-only display projection: the cart rows of one catalog
// product. Building groups never alters the flat list or its totals.
type Group struct {
	ProductID string
	Items     []LineItem
	Subtotal  decimal.Decimal
}

// GroupByProduct buckets items by their owning product, preserving first-seen
// product order and the item order inside each bucket.
func GroupByProduct(items []LineItem) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, it := range items {
		i, ok := index[it.ParentProductID]
		if !ok {
			i = len(groups)
			index[it.ParentProductID] = i
			groups = append(groups, Group{ProductID: it.ParentProductID})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Subtotal = groups[i].Subtotal.Add(it.TotalPrice)
	}
	return groups
}

// Cart holds one register session's working line items. All mutations go
// through the package-level functions so the same invariants apply.
type Cart struct {
	items []LineItem
}

// AddBatch merges incoming items into the cart (same semantics as AddBatch).
func (c *Cart) AddBatch(incoming []LineItem) { c.items = AddBatch(c.items, incoming) }

// Remove drops the item with the given key.
func (c *Cart) Remove(key string) { c.items = Remove(c.items, key) }

// SetQuantity updates one item's quantity, clamped to its stock.
func (c *Cart) SetQuantity(key string, qty int) { c.items = SetQuantity(c.items, key, qty) }

// Reset clears everything: the line list is empty and the total is zero.
func (c *Cart) Reset() { c.items = nil }

// Items returns a copy of the current line list.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// GrandTotal recomputes the cart total from the line list.
func (c *Cart) GrandTotal() decimal.Decimal { return GrandTotal(c.items) }

// Groups returns the display projection of the cart.
func (c *Cart) Groups() []Group { return GroupByProduct(c.items) }
