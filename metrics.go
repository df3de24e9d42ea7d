package goAuthClient

import "sync/atomic"

// MetricID defines a public type used by goAuthClient APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the session orchestrator.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the session orchestrator.
	MetricLoginFailure
	// MetricSignupSuccess is an exported constant or variable used by the session orchestrator.
	MetricSignupSuccess
	// MetricSignupFailure is an exported constant or variable used by the session orchestrator.
	MetricSignupFailure
	// MetricTwoFactorRequired is an exported constant or variable used by the session orchestrator.
	MetricTwoFactorRequired
	// MetricTwoFactorSuccess is an exported constant or variable used by the session orchestrator.
	MetricTwoFactorSuccess
	// MetricTwoFactorFailure is an exported constant or variable used by the session orchestrator.
	MetricTwoFactorFailure
	// MetricTwoFactorLockout is an exported constant or variable used by the session orchestrator.
	MetricTwoFactorLockout
	// MetricSessionRefreshSuccess is an exported constant or variable used by the session orchestrator.
	MetricSessionRefreshSuccess
	// MetricSessionRefreshFailure is an exported constant or variable used by the session orchestrator.
	MetricSessionRefreshFailure
	// MetricAccountSwitch is an exported constant or variable used by the session orchestrator.
	MetricAccountSwitch
	// MetricAccountSwitchRejected is an exported constant or variable used by the session orchestrator.
	MetricAccountSwitchRejected
	// MetricLogout is an exported constant or variable used by the session orchestrator.
	MetricLogout
	// MetricLogoutAll is an exported constant or variable used by the session orchestrator.
	MetricLogoutAll
	// MetricAccountDisabled is an exported constant or variable used by the session orchestrator.
	MetricAccountDisabled
	// MetricAccountRemoved is an exported constant or variable used by the session orchestrator.
	MetricAccountRemoved
	// MetricContinuationProcessed is an exported constant or variable used by the session orchestrator.
	MetricContinuationProcessed
	// MetricContinuationError is an exported constant or variable used by the session orchestrator.
	MetricContinuationError
	// MetricPermissionRetry is an exported constant or variable used by the session orchestrator.
	MetricPermissionRetry
	// MetricPermissionRetryRejected is an exported constant or variable used by the session orchestrator.
	MetricPermissionRetryRejected
	// MetricPasswordResetRequest is an exported constant or variable used by the session orchestrator.
	MetricPasswordResetRequest
	// MetricPasswordResetConfirm is an exported constant or variable used by the session orchestrator.
	MetricPasswordResetConfirm
	// MetricPasswordChange is an exported constant or variable used by the session orchestrator.
	MetricPasswordChange

	metricIDCount
)

// Metrics defines a public type used by goAuthClient APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics may return an error when input validation, dependency calls, or security checks fail.
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc describes the inc operation and its observable behavior.
//
// Inc may return an error when input validation, dependency calls, or security checks fail.
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot defines a public type used by goAuthClient APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot may return an error when input validation, dependency calls, or security checks fail.
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil || !m.enabled {
		return snapshot
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		if v := m.counters[id].Load(); v > 0 {
			snapshot.Counters[id] = v
		}
	}
	return snapshot
}
