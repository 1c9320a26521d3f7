// Package store owns the ordered ledger entry collection. It is the only
// component holding mutable entries; everything else works on copies.
//
// Persistence is a full serialize-and-store of the collection to the
// injected key-value backend after every mutation. There is no incremental
// append and no rollback: a write failure is surfaced wrapped in
// errs.ErrPersistence while the in-memory state remains authoritative.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nlazarte/libromayor/internal/errs"
	"github.com/nlazarte/libromayor/internal/kv"
	"github.com/nlazarte/libromayor/internal/ledger"
)

// Key is the logical name the serialized entry collection lives under.
const Key = "ledger/entries"

// Store keeps entries sorted by date descending, ids unique, and the
// key-value backend in sync. An RWMutex keeps each logical action atomic
// end-to-end under the concurrent HTTP surface.
type Store struct {
	mu       sync.RWMutex
	kv       kv.Store
	currency string
	entries  []ledger.Entry
	byID     map[int64]struct{}
	revision string
}

// New constructs a store persisting through the given backend. Amounts are
// rehydrated in the given currency.
func New(backend kv.Store, currency string) *Store {
	return &Store{
		kv:       backend,
		currency: currency,
		entries:  make([]ledger.Entry, 0),
		byID:     make(map[int64]struct{}),
	}
}

// Load reads the snapshot once at process start. A missing key means an
// empty ledger, not an error.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return fmt.Errorf("%w: load snapshot: %v", errs.ErrPersistence, err)
	}
	if !ok {
		return nil
	}
	snap, err := decodeSnapshot(raw, s.currency)
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = snap.entries
	s.byID = make(map[int64]struct{}, len(snap.entries))
	for _, e := range snap.entries {
		s.byID[e.ID] = struct{}{}
	}
	s.revision = snap.revision
	s.sortLocked()
	return nil
}

// All returns a copy of the entries in date-descending order.
func (s *Store) All(context.Context) []ledger.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Find returns the entry with the given id.
func (s *Store) Find(_ context.Context, id int64) (ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return ledger.Entry{}, errs.ErrNotFound
}

// Insert appends a new entry. The entry's id is taken as a candidate and
// bumped past collisions so ids stay unique even for same-millisecond
// creations. The stored entry is returned.
func (s *Store) Insert(ctx context.Context, e ledger.Entry) (ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if _, exists := s.byID[e.ID]; !exists {
			break
		}
		e.ID++
	}
	s.entries = append(s.entries, e)
	s.byID[e.ID] = struct{}{}
	s.sortLocked()
	return e, s.persistLocked(ctx)
}

// Upsert replaces the entry with the given id, or appends when absent.
func (s *Store) Upsert(ctx context.Context, id int64, e ledger.Entry) (ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = id
	replaced := false
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, e)
		s.byID[id] = struct{}{}
	}
	s.sortLocked()
	return e, s.persistLocked(ctx)
}

// Delete removes the entry with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.entries {
		if s.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errs.ErrNotFound
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	delete(s.byID, id)
	s.sortLocked()
	return s.persistLocked(ctx)
}

// NewID returns a fresh creation-millis id candidate. Insert resolves
// collisions, so two entries never share an id.
func (s *Store) NewID() int64 { return time.Now().UnixMilli() }

// Revision returns the id of the last snapshot written or loaded.
func (s *Store) Revision() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Ready reports backend connectivity for readiness probes.
func (s *Store) Ready(ctx context.Context) error { return s.kv.Ready(ctx) }

// sortLocked re-establishes the ordering invariant: date descending, ties
// broken by insertion order (stable sort). Caller must hold the write lock.
func (s *Store) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Date.After(s.entries[j].Date)
	})
}

// persistLocked serializes the full collection under a fresh revision and
// writes it to the backend. Caller must hold the write lock.
func (s *Store) persistLocked(ctx context.Context) error {
	raw, revision, err := encodeSnapshot(s.entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("%w: write snapshot: %v", errs.ErrPersistence, err)
	}
	s.revision = revision
	return nil
}
