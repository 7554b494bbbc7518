// Package store defines the persistence contract for transactions.
// Two adapters implement it, the remote REST backend and the local
// SQLite database, and both must honor identical semantics: the
// caller normalizes before persisting, regardless of backend.
package store

import (
	"context"
	"errors"

	"finanzas/internal/core"
)

var (
	// ErrUnavailable means the backing medium is unreachable: network
	// down, database file inaccessible. Typed, so callers never go
	// back to matching error-message substrings.
	ErrUnavailable = errors.New("transaction store unavailable")

	// ErrWrite means the backend rejected a mutation it received.
	ErrWrite = errors.New("transaction store rejected the write")
)

// TransactionStore is the single persistence contract.
type TransactionStore interface {
	// List returns a snapshot of every stored transaction.
	List(ctx context.Context) ([]core.Transaction, error)

	// Add persists one transaction and returns it as stored. A backend
	// may assign its own ID; the returned record is authoritative.
	Add(ctx context.Context, tx core.Transaction) (core.Transaction, error)

	// Remove deletes by id. Removing an id that does not exist is not
	// an error: the boolean reports whether anything was removed.
	Remove(ctx context.Context, id string) (bool, error)

	// RemoveAll deletes every transaction.
	RemoveAll(ctx context.Context) error
}
