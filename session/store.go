package session

import "sync"

// Store holds the one live Snapshot for the process.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore creates an empty Store (no session).
func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the live snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.clone()
}

// Replace swaps the live snapshot for next, normalized. Whole-snapshot
// replacement is the only write primitive: interleaved refreshes resolve as
// last-write-wins.
func (s *Store) Replace(next Snapshot) Snapshot {
	normalized := next.Normalize()
	s.mu.Lock()
	s.snapshot = normalized.clone()
	s.mu.Unlock()
	return normalized
}

// SetCurrentAccount repoints the current account. The id must already be a
// member of the snapshot; unknown ids leave the snapshot untouched and
// return false.
func (s *Store) SetCurrentAccount(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snapshot.Contains(id) {
		return false
	}
	s.snapshot.CurrentAccountID = id
	return true
}

// RemoveAccount drops id from the session, promoting the next remaining
// account not excluded by skip to current when id was current; skip may be
// nil.
func (s *Store) RemoveAccount(id string, skip func(string) bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = s.snapshot.Without(id, skip)
	return s.snapshot.clone()
}

// Clear resets the store to the no-session state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.snapshot = Snapshot{}
	s.mu.Unlock()
}
