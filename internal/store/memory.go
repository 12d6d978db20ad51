// internal/store/memory.go
//
// Persistence of finished round outcomes.
//   - Store is the interface used by the game shell.
//   - memory keeps records in a slice (tests, --no-store runs).
//   - SQLite (sqlite.go) keeps them on disk under the configured base directory.
//
// Records carry the binary outcome plus what the binary format leaves out:
// the winner's display name, the draw sequence and the round timings.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Silmaen/EvenementLoto-sub001/internal/outcome"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("store: outcome not found")

// Record is one persisted round outcome.
type Record struct {
	ID         int64
	Outcome    outcome.Outcome
	WinnerName string
	Draws      int
	Sequence   []uint8 // balls in drawing order, when known
	StartedAt  time.Time
	FinishedAt time.Time
	CreatedAt  time.Time
}

// Store defines the persistence interface for round outcomes.
type Store interface {
	// Save persists r and fills r.ID and r.CreatedAt.
	Save(ctx context.Context, r *Record) error

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Record, error)

	// List returns the most recent records first; limit <= 0 means 20.
	List(ctx context.Context, limit int) ([]Record, error)

	Close() error
}

const defaultLimit = 20

// memory is an in-memory Store implementation.
type memory struct {
	mu      sync.RWMutex // guards records
	records []Record     // ordered by ID
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{now: time.Now}
}

func (m *memory) Save(ctx context.Context, r *Record) error {
	if len(r.Outcome.Prizes) > outcome.MaxPrizes {
		return outcome.ErrTooManyPrizes
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.records) + 1)
	r.CreatedAt = m.now().UTC()
	m.records = append(m.records, r.clone())
	return nil
}

func (m *memory) Get(ctx context.Context, id int64) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 1 || id > int64(len(m.records)) {
		return nil, ErrNotFound
	}
	r := m.records[id-1].clone()
	return &r, nil
}

func (m *memory) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, min(limit, len(m.records)))
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i].clone())
	}
	return out, nil
}

func (m *memory) Close() error { return nil }

// clone copies r with its own slices.
func (r Record) clone() Record {
	r.Outcome.Prizes = append([]uint32(nil), r.Outcome.Prizes...)
	r.Sequence = append([]uint8(nil), r.Sequence...)
	return r
}
