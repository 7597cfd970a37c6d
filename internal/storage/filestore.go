// Package storage provides durable slot adapters for cart state
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thestorefront/storefront-engine/internal/cart"
)

// FileStore keeps the cart state as one JSON document on disk. Writes are
// full-state overwrites; with a single writer per session, last write wins
// and a superseded write is harmless.
type FileStore struct {
	filePath string
}

// NewFileStore creates a store backed by the given file path. The file is
// created on first save.
func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

// Load reads the saved state. A missing file is an empty cart, not an error;
// a corrupt file returns an empty state plus the decode error so the caller
// can log it.
func (s *FileStore) Load() (cart.State, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cart.State{}, nil
		}
		return cart.State{}, fmt.Errorf("failed to read cart file: %w", err)
	}

	var state cart.State
	if err := json.Unmarshal(data, &state); err != nil {
		return cart.State{}, fmt.Errorf("failed to parse cart file: %w", err)
	}

	return state, nil
}

// Save overwrites the slot with the full state
func (s *FileStore) Save(state cart.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Clear removes the slot entirely; a later Load starts empty.
func (s *FileStore) Clear() error {
	err := os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
