package composition

import "errors"

// Validation failures are returned to the caller, never panicked. A failed
// build produces no payload at all — there is no partial submission.
var (
	ErrParentQuantity = errors.New("parent quantity must be greater than zero")
	ErrEmpty          = errors.New("composition has no lines")
	ErrLineQuantity   = errors.New("every composition line needs a quantity greater than zero")
	ErrLineUnit       = errors.New("every bundling line needs a unit")
)

// BlendMaterial is one entry of the blend request body.
type BlendMaterial struct {
	ProductDetailID string `json:"product_detail_id"`
	UsedStock       int    `json:"used_stock"`
	UnitID          string `json:"unit_id,omitempty"`
}

// BlendPayload is the nested body POSTed to create a product blend: one parent
// record plus the materials consumed to produce it.
type BlendPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitID      string          `json:"unit_id,omitempty"`
	Materials   []BlendMaterial `json:"materials"`
}

// BuildBlendPayload maps committed lines into a blend request body. Given N
// lines the payload has exactly N materials in the same order. It fails when
// the parent quantity is not positive, the line list is empty, or any line
// quantity is not positive.
func BuildBlendPayload(name, description string, quantity int, unitID string, lines []Line) (*BlendPayload, error) {
	if quantity <= 0 {
		return nil, ErrParentQuantity
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	materials := make([]BlendMaterial, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrLineQuantity
		}
		materials = append(materials, BlendMaterial{
			ProductDetailID: l.ProductDetailID,
			UsedStock:       l.Quantity,
			UnitID:          l.UnitID,
		})
	}
	return &BlendPayload{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		UnitID:      unitID,
		Materials:   materials,
	}, nil
}

// BundlingComposition is one entry of the bundling request body.
type BundlingComposition struct {
	ProductDetailID string `json:"product_detail_id"`
	Quantity        int    `json:"quantity"`
	UnitID          string `json:"unit_id"`
}

// BundlingPayload is the nested body for creating or replacing a bundling.
type BundlingPayload struct {
	Name         string                `json:"name"`
	Quantity     int                   `json:"quantity"`
	Compositions []BundlingComposition `json:"compositions"`
}

// BuildBundlingPayload maps committed lines into a bundling request body.
// Bundling lines always require an assigned unit — the create and edit flows
// share this rule. Order and count match the input lines exactly.
func BuildBundlingPayload(name string, quantity int, lines []Line) (*BundlingPayload, error) {
	if quantity <= 0 {
		return nil, ErrParentQuantity
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	comps := make([]BundlingComposition, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrLineQuantity
		}
		if l.UnitID == "" {
			return nil, ErrLineUnit
		}
		comps = append(comps, BundlingComposition{
			ProductDetailID: l.ProductDetailID,
			Quantity:        l.Quantity,
			UnitID:          l.UnitID,
		})
	}
	return &BundlingPayload{Name: name, Quantity: quantity, Compositions: comps}, nil
}
