package cart

import (
	"errors"
	"testing"

	"github.com/thestorefront/storefront-engine/internal/catalog"
)

// stubStore is the in-memory double for the durable slot.
type stubStore struct {
	state    State
	set      bool
	saves    int
	loadErr  error
	saveErr  error
	clearErr error
}

func (s *stubStore) Load() (State, error) {
	if s.loadErr != nil {
		return State{}, s.loadErr
	}
	if !s.set {
		return State{}, nil
	}
	return s.state.Clone(), nil
}

func (s *stubStore) Save(state State) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.state = state.Clone()
	s.set = true
	return nil
}

func (s *stubStore) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.state = State{}
	s.set = false
	return nil
}

func testProduct(id int, price, offer float64) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "Product",
		Price: price, OfferPrice: offer,
		Slug: "product",
		Media: []catalog.Media{
			{ImageURL: "/media/product.jpg"},
		},
	}
}

func TestAdd_MergesByProductID(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	p := testProduct(1, 100, 0)

	l.Add(p, 2)
	state := l.Add(p, 3)

	if len(state.Lines) != 1 {
		t.Fatalf("Expected exactly one line after merge, got %d", len(state.Lines))
	}
	if state.Lines[0].Quantity != 5 {
		t.Errorf("Expected merged quantity 5, got %d", state.Lines[0].Quantity)
	}
}

func TestAdd_AppendsPreservingOrder(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)

	l.Add(testProduct(1, 10, 0), 1)
	l.Add(testProduct(2, 20, 0), 1)
	l.Add(testProduct(1, 10, 0), 1) // merge, must not reorder
	state := l.Add(testProduct(3, 30, 0), 1)

	ids := []int{state.Lines[0].ProductID, state.Lines[1].ProductID, state.Lines[2].ProductID}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("Expected insertion order [1 2 3], got %v", ids)
	}
}

func TestAdd_OfferPricePrecedence(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)

	l.Add(testProduct(1, 100, 0), 2)
	state := l.Add(testProduct(2, 80, 50), 1)

	if state.Lines[0].UnitPrice != 100 {
		t.Errorf("Expected list price 100, got %v", state.Lines[0].UnitPrice)
	}
	if state.Lines[1].UnitPrice != 50 {
		t.Errorf("Expected offer price 50, got %v", state.Lines[1].UnitPrice)
	}
	if got := state.Subtotal(); got != 250 {
		t.Errorf("Expected subtotal 250, got %v", got)
	}
}

func TestAdd_PlaceholderThumbnail(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)

	p := catalog.Product{ID: 7, Name: "No media", Price: 5, Slug: "no-media"}
	state := l.Add(p, 1)

	if state.Lines[0].Image != catalog.PlaceholderImage {
		t.Errorf("Expected placeholder image, got '%s'", state.Lines[0].Image)
	}
}

func TestAdd_NormalizesQuantity(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)

	state := l.Add(testProduct(1, 10, 0), 0)
	if state.Lines[0].Quantity != 1 {
		t.Errorf("Expected quantity normalized to 1, got %d", state.Lines[0].Quantity)
	}
}

func TestSetQuantity_ClampsToOne(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	l.Add(testProduct(1, 10, 0), 3)

	state := l.SetQuantity(1, -5)

	if len(state.Lines) != 1 {
		t.Fatalf("Clamping must never remove the line, got %d lines", len(state.Lines))
	}
	if state.Lines[0].Quantity != 1 {
		t.Errorf("Expected quantity clamped to 1, got %d", state.Lines[0].Quantity)
	}
}

func TestSetQuantity_Exact(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	l.Add(testProduct(1, 10, 0), 3)

	state := l.SetQuantity(1, 7)
	if state.Lines[0].Quantity != 7 {
		t.Errorf("Expected quantity 7, got %d", state.Lines[0].Quantity)
	}
}

func TestSetQuantity_UnknownIDNoop(t *testing.T) {
	store := &stubStore{}
	l := NewLedger(store, nil)
	l.Add(testProduct(1, 10, 0), 1)
	saves := store.saves

	state := l.SetQuantity(99, 5)
	if len(state.Lines) != 1 || state.Lines[0].Quantity != 1 {
		t.Errorf("Unknown id must not change state: %+v", state.Lines)
	}
	if store.saves != saves {
		t.Errorf("Unknown id must not trigger a save")
	}
}

func TestRemove(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	l.Add(testProduct(1, 10, 0), 1)
	l.Add(testProduct(2, 20, 0), 1)

	state := l.Remove(1)
	if len(state.Lines) != 1 || state.Lines[0].ProductID != 2 {
		t.Errorf("Expected only product 2 to remain, got %+v", state.Lines)
	}

	// Removing an absent id is a no-op, not an error.
	state = l.Remove(42)
	if len(state.Lines) != 1 {
		t.Errorf("Expected no-op removal, got %+v", state.Lines)
	}
}

func TestClear_EmptiesStoreToo(t *testing.T) {
	store := &stubStore{}
	l := NewLedger(store, nil)
	l.Add(testProduct(1, 10, 0), 2)

	state := l.Clear()
	if len(state.Lines) != 0 {
		t.Errorf("Expected empty cart, got %+v", state.Lines)
	}

	// A reload must start empty.
	reloaded := NewLedger(store, nil)
	if len(reloaded.Lines()) != 0 {
		t.Errorf("Expected empty cart after reload, got %+v", reloaded.Lines())
	}
}

func TestSubtotal_Recomputed(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	l.Add(testProduct(1, 100, 0), 2)

	if got := l.Subtotal(); got != 200 {
		t.Errorf("Expected subtotal 200, got %v", got)
	}

	l.SetQuantity(1, 1)
	if got := l.Subtotal(); got != 100 {
		t.Errorf("Expected subtotal 100 after quantity change, got %v", got)
	}
}

func TestNewLedger_RehydratesSavedState(t *testing.T) {
	store := &stubStore{}
	first := NewLedger(store, nil)
	first.Add(testProduct(1, 100, 0), 2)
	first.Add(testProduct(2, 80, 50), 1)

	second := NewLedger(store, nil)
	lines := second.Lines()

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines after rehydrate, got %d", len(lines))
	}
	if lines[0].ProductID != 1 || lines[1].ProductID != 2 {
		t.Errorf("Expected line order preserved, got %+v", lines)
	}
	if got := second.Subtotal(); got != 250 {
		t.Errorf("Expected subtotal 250 after rehydrate, got %v", got)
	}
}

func TestNewLedger_LoadFailureDegradesToEmpty(t *testing.T) {
	store := &stubStore{loadErr: errors.New("corrupt slot")}

	l := NewLedger(store, nil)
	if len(l.Lines()) != 0 {
		t.Errorf("Expected empty cart on load failure, got %+v", l.Lines())
	}
}

func TestMutation_SurvivesSaveFailure(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	l := NewLedger(store, nil)

	state := l.Add(testProduct(1, 10, 0), 1)
	if len(state.Lines) != 1 {
		t.Errorf("In-memory mutation must survive a failed save, got %+v", state.Lines)
	}
}

func TestSnapshot_IsImmutable(t *testing.T) {
	l := NewLedger(&stubStore{}, nil)
	l.Add(testProduct(1, 10, 0), 1)

	snapshot := l.Lines()
	snapshot[0].Quantity = 99

	if l.Lines()[0].Quantity != 1 {
		t.Error("Mutating a snapshot leaked into ledger state")
	}
}
