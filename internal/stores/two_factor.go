package stores

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrChallengeNotFound = errors.New("two-factor challenge not found")
	ErrChallengeExceeded = errors.New("two-factor challenge attempts exceeded")
)

// TwoFactorChallenge is the ephemeral record created when a first-factor
// login succeeds but the server demands a second factor.
type TwoFactorChallenge struct {
	TempToken         string
	AccountID         string
	AttemptsRemaining int
	CreatedAt         time.Time
}

// TwoFactorStore holds at most one live challenge. Starting a new login
// replaces any prior unfinished challenge: the last login response wins.
type TwoFactorStore struct {
	mu        sync.Mutex
	challenge *TwoFactorChallenge
}

// NewTwoFactorStore creates an empty store.
func NewTwoFactorStore() *TwoFactorStore {
	return &TwoFactorStore{}
}

// Put installs a fresh challenge, discarding any prior one.
func (s *TwoFactorStore) Put(tempToken, accountID string, maxAttempts int) {
	s.mu.Lock()
	s.challenge = &TwoFactorChallenge{
		TempToken:         tempToken,
		AccountID:         accountID,
		AttemptsRemaining: maxAttempts,
		CreatedAt:         time.Now(),
	}
	s.mu.Unlock()
}

// Get returns a copy of the live challenge.
func (s *TwoFactorStore) Get() (TwoFactorChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.challenge == nil {
		return TwoFactorChallenge{}, ErrChallengeNotFound
	}
	return *s.challenge, nil
}

// RecordFailure burns one attempt. When attempts hit zero the challenge is
// destroyed and ErrChallengeExceeded is returned; the caller owns the
// lockout that follows.
func (s *TwoFactorStore) RecordFailure() (remaining int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.challenge == nil {
		return 0, ErrChallengeNotFound
	}
	s.challenge.AttemptsRemaining--
	remaining = s.challenge.AttemptsRemaining
	if remaining <= 0 {
		s.challenge = nil
		return 0, ErrChallengeExceeded
	}
	return remaining, nil
}

// Delete destroys the live challenge, if any. Idempotent.
func (s *TwoFactorStore) Delete() {
	s.mu.Lock()
	s.challenge = nil
	s.mu.Unlock()
}

// Live reports whether a challenge is currently held.
func (s *TwoFactorStore) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge != nil
}
