package limiters

import (
	"sync"
	"time"
)

// Lockout is the countdown throttle entered after the two-factor attempt
// budget is exhausted. It is the one timer owned by the core: Stop must be
// called on engine close or reset so a stale callback cannot revive stale
// state.
type Lockout struct {
	duration time.Duration
	onExpire func()

	mu    sync.Mutex
	until time.Time
	timer *time.Timer
}

// NewLockout creates a lockout with the given countdown duration. onExpire
// runs once when the countdown elapses; it may be nil.
func NewLockout(duration time.Duration, onExpire func()) *Lockout {
	return &Lockout{duration: duration, onExpire: onExpire}
}

// Trigger starts (or restarts) the countdown and returns its deadline.
func (l *Lockout) Trigger() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
	}
	l.until = time.Now().Add(l.duration)
	l.timer = time.AfterFunc(l.duration, l.expire)
	return l.until
}

func (l *Lockout) expire() {
	l.mu.Lock()
	expired := !l.until.IsZero() && !time.Now().Before(l.until)
	if expired {
		l.until = time.Time{}
		l.timer = nil
	}
	l.mu.Unlock()
	if expired && l.onExpire != nil {
		l.onExpire()
	}
}

// Active reports whether the countdown is still running.
func (l *Lockout) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.until.IsZero() && time.Now().Before(l.until)
}

// Remaining returns the time left on the countdown, zero when inactive.
func (l *Lockout) Remaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.until.IsZero() {
		return 0
	}
	remaining := time.Until(l.until)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Until returns the countdown deadline, zero when inactive.
func (l *Lockout) Until() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.until
}

// Stop cancels the countdown without firing onExpire.
func (l *Lockout) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.until = time.Time{}
}
