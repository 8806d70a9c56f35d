// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Live solver sessions are ephemeral by design: the engine holds no
// persisted state, so losing them on restart is acceptable.
//
// Characteristics:
//   - Stores *Record objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Record carries its own mutex: a solver.Session is single-owner,
//     so handlers lock the record around any session call.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Record is one live solver session and its bookkeeping.
type Record struct {
	// Guards the embedded session; solver sessions are not safe for
	// concurrent use.
	sync.Mutex

	ID        string
	Session   *solver.Session
	CreatedAt time.Time
}

// Store defines the keeping of live solver sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Put registers or replaces a session record.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a session record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a session record; no-op for unknown IDs.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Record
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Record)}
}

func (m *memory) Put(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.ID] = rec
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.sessions[id]; ok {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
