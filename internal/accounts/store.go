package accounts

import (
	"sync"
	"time"
)

// Store is the keyed account cache. All methods are safe for concurrent use;
// each id's entry is independently replaced, never merged across calls.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*State
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*State)}
}

// Get returns a copy of the entry for id, or ok=false when untracked.
func (s *Store) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return State{}, false
	}
	return cloneState(entry), true
}

// SetFull stores the full record for the account, superseding any
// summary-only entry and refreshing the summary projection so the two views
// cannot disagree. The disabled flag survives the write.
func (s *Store) SetFull(account *Account) {
	if account == nil || account.ID == "" {
		return
	}
	copied := *account
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[account.ID]
	if entry == nil {
		entry = &State{}
		s.entries[account.ID] = entry
	}
	entry.Account = &copied
	entry.Summary = summaryOf(&copied)
	entry.Err = nil
	entry.LastUpdated = time.Now()
}

// SetSummary stores a summary projection. A full record always supersedes a
// summary, so this is a no-op when one is already cached.
func (s *Store) SetSummary(summary *Summary) {
	if summary == nil || summary.ID == "" {
		return
	}
	copied := *summary
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[summary.ID]
	if entry == nil {
		s.entries[summary.ID] = &State{
			Summary:     &copied,
			LastUpdated: time.Now(),
		}
		return
	}
	if entry.Full() {
		return
	}
	entry.Summary = &copied
	entry.LastUpdated = time.Now()
}

// ApplyUpdate merges a partial update into an existing full record,
// refreshing the summary projection in the same critical section. Absent
// ids and summary-only entries are left untouched: Update never creates a
// phantom entry, and a summary must not masquerade as full data.
func (s *Store) ApplyUpdate(id string, update Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || !entry.Full() {
		return false
	}
	account := *entry.Account
	if update.Status != nil {
		account.Status = *update.Status
	}
	if update.FirstName != nil {
		account.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		account.LastName = *update.LastName
	}
	if update.DisplayName != nil {
		account.DisplayName = *update.DisplayName
	}
	if update.Email != nil {
		account.Email = *update.Email
	}
	if update.ImageURL != nil {
		account.ImageURL = *update.ImageURL
	}
	if update.EmailVerified != nil {
		account.EmailVerified = *update.EmailVerified
	}
	if update.Security != nil {
		account.Security = *update.Security
	}
	entry.Account = &account
	entry.Summary = summaryOf(&account)
	entry.LastUpdated = time.Now()
	return true
}

// SetDisabled toggles the client-side disabled overlay for a tracked id.
func (s *Store) SetDisabled(id string, disabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return false
	}
	entry.Disabled = disabled
	return true
}

// SetError records a per-account error slot without touching cached data.
func (s *Store) SetError(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return
	}
	entry.Err = err
}

// Remove hard-deletes the entry for id.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*State)
	s.mu.Unlock()
}

// IsDisabled reports whether id is tracked and disabled.
func (s *Store) IsDisabled(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return ok && entry.Disabled
}

// Has reports whether id is tracked at all.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// ListActive returns copies of all non-disabled entries keyed by id.
func (s *Store) ListActive() map[string]State {
	return s.list(func(e *State) bool { return !e.Disabled })
}

// ListDisabled returns copies of all disabled entries keyed by id.
func (s *Store) ListDisabled() map[string]State {
	return s.list(func(e *State) bool { return e.Disabled })
}

// ListAll returns copies of every entry keyed by id.
func (s *Store) ListAll() map[string]State {
	return s.list(func(*State) bool { return true })
}

// Len reports the number of tracked entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) list(keep func(*State) bool) map[string]State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]State)
	for id, entry := range s.entries {
		if keep(entry) {
			out[id] = cloneState(entry)
		}
	}
	return out
}

func cloneState(entry *State) State {
	out := *entry
	if entry.Account != nil {
		account := *entry.Account
		out.Account = &account
	}
	if entry.Summary != nil {
		summary := *entry.Summary
		out.Summary = &summary
	}
	return out
}
