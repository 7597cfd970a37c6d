// Package cart maintains the ordered collection of purchasable line items
package cart

// Line is one product entry in the cart with an aggregated quantity.
// ProductID is the unique key: the ledger never holds two lines for the
// same product.
type Line struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Path      string  `json:"path"`
}

// State is the full ordered set of cart lines
type State struct {
	Lines []Line `json:"lines"`
}

// Subtotal derives the monetary total from the current lines. It is always
// recomputed, never cached.
func (s State) Subtotal() float64 {
	var total float64
	for _, line := range s.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Clone returns a deep copy so callers can never reach the live state.
func (s State) Clone() State {
	out := State{Lines: make([]Line, len(s.Lines))}
	copy(out.Lines, s.Lines)
	return out
}
