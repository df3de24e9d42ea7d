package limiters

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrCooldown          = errors.New("retry cooldown not elapsed")
	ErrAttemptsExhausted = errors.New("retry attempts exhausted")
	ErrNothingToRetry    = errors.New("no failure recorded")
)

// PermissionRetry gates the one automatically recoverable path in the core:
// re-running a failed permission-grant or reauthorize request. A retry is
// allowed only after a fixed cooldown since the last failure, and only a
// bounded number of times; success resets the attempt counter.
type PermissionRetry struct {
	cooldown    time.Duration
	maxAttempts int

	mu       sync.Mutex
	attempts int
	limiter  *rate.Limiter
}

// NewPermissionRetry creates the gate with the given cooldown and attempt
// bound.
func NewPermissionRetry(cooldown time.Duration, maxAttempts int) *PermissionRetry {
	return &PermissionRetry{cooldown: cooldown, maxAttempts: maxAttempts}
}

// RecordFailure notes a failed request. The token-bucket drain below is
// what enforces "no retry until cooldown since this failure".
func (p *PermissionRetry) RecordFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	if p.limiter == nil {
		p.limiter = rate.NewLimiter(rate.Every(p.cooldown), 1)
	}
	for p.limiter.Allow() {
	}
}

// Acquire reports whether a retry may proceed now. The attempt bound is
// checked before the token drain: exhaustion is permanent, so it must not
// flip back to a cooldown rejection once the window reopens.
func (p *PermissionRetry) Acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.limiter == nil {
		return ErrNothingToRetry
	}
	if p.attempts >= p.maxAttempts {
		return ErrAttemptsExhausted
	}
	if !p.limiter.Allow() {
		return ErrCooldown
	}
	return nil
}

// Reset clears the failure history after a successful request.
func (p *PermissionRetry) Reset() {
	p.mu.Lock()
	p.attempts = 0
	p.limiter = nil
	p.mu.Unlock()
}

// Attempts reports the failures recorded since the last reset.
func (p *PermissionRetry) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}
