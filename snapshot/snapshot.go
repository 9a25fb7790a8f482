// Package snapshot caches cleaned query results between dashboard
// renders. The pipeline itself stays stateless: every entry is an
// immutable snapshot of one fetch-and-clean invocation, and callers get
// the whole snapshot or nothing.
package snapshot

import (
	"go-crimewatch/types"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Key identifies one dashboard query. Dates are held as YYYY-MM-DD
// strings so the key is comparable.
type Key struct {
	Category string
	AreaCode string
	Start    string
	End      string
}

// Snapshot is one cached fetch-and-clean result.
type Snapshot struct {
	ID             string                 `json:"id"`
	FetchedAt      time.Time              `json:"fetched_at"`
	Rows           []types.JoinedIncident `json:"-"`
	Total          int                    `json:"total"`
	MalformedCount int                    `json:"malformed_count"`
}

type entry struct {
	snap       Snapshot
	lastAccess time.Time
}

// Store is a mutex-guarded TTL cache of snapshots.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[Key]*entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[Key]*entry),
	}
}

// Get returns the snapshot for a key if it exists and has not expired.
func (s *Store) Get(k Key) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[k]
	if !ok {
		return Snapshot{}, false
	}
	if time.Since(e.snap.FetchedAt) > s.ttl {
		return Snapshot{}, false
	}
	e.lastAccess = time.Now()
	return e.snap, true
}

// Put stores a fresh snapshot for the key, stamping it with a new id and
// fetch time, and returns it.
func (s *Store) Put(k Key, rows []types.JoinedIncident, total, malformedCount int) Snapshot {
	snap := Snapshot{
		ID:             uuid.NewString(),
		FetchedAt:      time.Now(),
		Rows:           rows,
		Total:          total,
		MalformedCount: malformedCount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[k] = &entry{snap: snap, lastAccess: snap.FetchedAt}
	return snap
}

// PurgeExpired drops entries past their TTL that nobody has touched
// recently, returning how many were removed.
func (s *Store) PurgeExpired(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := time.Now()
	for k, e := range s.entries {
		if now.Sub(e.snap.FetchedAt) > s.ttl && now.Sub(e.lastAccess) > idle {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// StaleWarmKeys lists expired entries that were accessed within the given
// window. These are the queries worth re-fetching before a user asks.
func (s *Store) StaleWarmKeys(window time.Duration) []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []Key
	now := time.Now()
	for k, e := range s.entries {
		if now.Sub(e.snap.FetchedAt) > s.ttl && now.Sub(e.lastAccess) <= window {
			keys = append(keys, k)
		}
	}
	return keys
}

// Len reports the number of cached snapshots, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
