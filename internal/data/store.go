package data

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"backup-power-sim/internal/sim"
)

// StoredResult is a completed simulation retained for later ledger fetches.
type StoredResult struct {
	Result    *sim.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResultStore keeps completed simulation results in memory so the API can
// serve ledger downloads without rerunning the engine. Entries expire after
// the configured TTL.
type ResultStore struct {
	mu    sync.RWMutex
	store map[string]*StoredResult
	ttl   time.Duration
}

func NewResultStore(ttl time.Duration) *ResultStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &ResultStore{
		store: make(map[string]*StoredResult),
		ttl:   ttl,
	}
	go s.cleanup()
	return s
}

// Put stores a result and returns its generated ID.
func (s *ResultStore) Put(res *sim.Result) string {
	id := newResultID()
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[id] = &StoredResult{
		Result:    res,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	return id
}

// Get retrieves a stored result if present and not expired.
func (s *ResultStore) Get(id string) (*sim.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.store[id]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Clear removes all entries.
func (s *ResultStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = make(map[string]*StoredResult)
}

// cleanup periodically removes expired entries.
func (s *ResultStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for id, entry := range s.store {
			if now.After(entry.ExpiresAt) {
				delete(s.store, id)
			}
		}
		s.mu.Unlock()
	}
}

func newResultID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is unrecoverable for this process.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
