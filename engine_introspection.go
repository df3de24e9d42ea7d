package goAuthClient

// StateSnapshot describes the statesnapshot operation and its observable behavior.
//
// StateSnapshot may return an error when input validation, dependency calls, or security checks fail.
// StateSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StateSnapshot() StateSnapshot {
	if e == nil {
		return StateSnapshot{}
	}

	snapshot := e.session.Current()
	return StateSnapshot{
		Phase:            e.Phase(),
		HasSession:       snapshot.HasSession,
		SessionValid:     snapshot.Valid,
		AccountCount:     e.accounts.Len(),
		DisabledCount:    len(e.accounts.ListDisabled()),
		ChallengeLive:    e.twoFactor.Live(),
		LockoutRemaining: e.lockout.Remaining(),
		RetryAttempts:    e.permRetry.Attempts(),
	}
}
