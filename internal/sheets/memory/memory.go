package memory

import (
	"context"
	"fmt"
	"sync"

	"finanzas/internal/core"
)

// Store is an in-memory stand-in for the Google Sheets adapter, used in
// tests and local runs without credentials.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append upserts the transaction keyed by its ID and returns a
// synthetic row reference, mirroring the sheet adapter's idempotency.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ID == tx.ID {
			s.items[i] = tx
			return fmt.Sprintf("mem:%d", i+1), nil
		}
	}
	s.items = append(s.items, tx)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Delete removes the transaction with the given ID. Missing IDs are
// ignored, mirroring the sheet adapter.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.items {
		if tx.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Items returns a copy of the stored transactions.
func (s *Store) Items() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}
