package cart

import (
	"log/slog"
	"sync"

	"github.com/thestorefront/storefront-engine/internal/catalog"
)

// Ledger owns the cart state for one session. Mutations are synchronous and
// atomic; readers get immutable snapshots. Persistence is write-through and
// best-effort: a failed save is logged and the in-memory mutation stands, so
// the shopper's action always takes effect.
type Ledger struct {
	mu    sync.Mutex
	state State
	store Store
	log   *slog.Logger
}

// NewLedger creates a ledger rehydrated from the store. A missing or
// malformed slot degrades to an empty cart, never an error.
func NewLedger(store Store, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	l := &Ledger{store: store, log: log}

	state, err := store.Load()
	if err != nil {
		log.Warn("failed to load saved cart, starting empty", "error", err)
		state = State{}
	}
	l.state = state

	return l
}

// SetLogger swaps the ledger's logger. The server uses this once the
// dashboard console exists to tee into.
func (l *Ledger) SetLogger(log *slog.Logger) {
	if log == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = log
}

// Add puts quantity units of a product in the cart. If a line for the
// product already exists its quantity grows; otherwise a new line is
// appended, leaving existing lines in place. A quantity below 1 counts as 1.
func (l *Ledger) Add(product catalog.Product, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	merged := false
	for i := range l.state.Lines {
		if l.state.Lines[i].ProductID == product.ID {
			l.state.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		l.state.Lines = append(l.state.Lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.EffectivePrice(),
			Quantity:  quantity,
			Image:     product.Thumbnail(),
			Path:      product.Slug,
		})
	}

	l.save()
	return l.state.Clone()
}

// SetQuantity sets a line's quantity exactly. Non-positive input clamps to 1;
// taking a line out of the cart is Remove's job, never this one's. Unknown
// ids are a no-op.
func (l *Ledger) SetQuantity(productID, quantity int) State {
	if quantity <= 0 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.state.Lines {
		if l.state.Lines[i].ProductID == productID {
			l.state.Lines[i].Quantity = quantity
			l.save()
			break
		}
	}

	return l.state.Clone()
}

// Remove deletes the line for a product. Absent ids are a no-op, not an error.
func (l *Ledger) Remove(productID int) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.state.Lines {
		if l.state.Lines[i].ProductID == productID {
			l.state.Lines = append(l.state.Lines[:i], l.state.Lines[i+1:]...)
			l.save()
			break
		}
	}

	return l.state.Clone()
}

// Clear empties the cart and the durable mirror, so a reload starts empty.
func (l *Ledger) Clear() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = State{}
	if err := l.store.Clear(); err != nil {
		l.log.Warn("failed to clear saved cart", "error", err)
	}

	return l.state.Clone()
}

// State returns an immutable snapshot of the full cart state
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Lines returns a snapshot of the current lines in insertion order
func (l *Ledger) Lines() []Line {
	return l.State().Lines
}

// Subtotal returns the current derived total
func (l *Ledger) Subtotal() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Subtotal()
}

// save mirrors the full state to the store. Callers hold the mutex.
func (l *Ledger) save() {
	if err := l.store.Save(l.state.Clone()); err != nil {
		l.log.Warn("failed to save cart", "error", err)
	}
}
