// Package kv defines the flat key-value persistence surface the ledger
// snapshots are written to. Backends are deliberately dumb: one value per
// key, read once at start, replaced in full on every mutation.
package kv

import "context"

// Store is the external persistence collaborator.
type Store interface {
	// Get returns the value for key. The second result is false when the key
	// is absent, which callers treat as an empty ledger.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Ready verifies connectivity to the backing service.
	Ready(ctx context.Context) error
	// Close releases any underlying resources.
	Close() error
}
