package storage

import (
	"sync"

	"github.com/thestorefront/storefront-engine/internal/cart"
)

// MemStore is an in-memory slot for tests and ephemeral runs. It serializes
// nothing; it just mirrors the state it is handed.
type MemStore struct {
	mu    sync.Mutex
	state cart.State
	set   bool

	// Test hooks: when non-nil, the corresponding operation fails with it.
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() (cart.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return cart.State{}, s.LoadErr
	}
	if !s.set {
		return cart.State{}, nil
	}
	return s.state.Clone(), nil
}

func (s *MemStore) Save(state cart.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.state = state.Clone()
	s.set = true
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.state = cart.State{}
	s.set = false
	return nil
}
