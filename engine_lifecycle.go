package goAuthClient

import (
	"context"
	"log"

	"github.com/MrEthical07/goAuthClient/session"
)

// SwitchTo describes the switchto operation and its observable behavior.
//
// SwitchTo may return an error when input validation, dependency calls, or security checks fail.
// SwitchTo does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SwitchTo(ctx context.Context, id string) error {
	return e.SetCurrentAccount(ctx, id)
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, id string, clearState bool) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if id == "" {
		id = e.session.Current().CurrentAccountID
		if id == "" {
			return ErrNoCurrentAccount
		}
	}

	// The remote logout always runs; local state only changes once the
	// authority has acknowledged it.
	if _, err := e.transport.Post(ctx, pathLogout, map[string]string{"accountId": id}); err != nil {
		e.emitAudit(ctx, auditEventLogoutSession, false, id, err, nil)
		return err
	}

	if e.notifier != nil {
		e.notifier.Unsubscribe(id)
	}

	if clearState {
		e.accounts.Remove(id)
		e.session.RemoveAccount(id, e.accounts.IsDisabled)
		e.metricInc(MetricLogout)
		e.emitAudit(ctx, auditEventLogoutSession, true, id, nil, nil)
		return nil
	}

	// Soft logout: the entry stays cached for later reactivation but is
	// excluded from active views and cannot become current.
	e.accounts.SetDisabled(id, true)
	e.repointCurrentAway(id)
	e.metricInc(MetricAccountDisabled)
	e.emitAudit(ctx, auditEventLogoutDisable, true, id, nil, nil)
	return nil
}

// repointCurrentAway moves the current pointer off id when id holds it,
// preferring the first non-disabled member of the session.
func (e *Engine) repointCurrentAway(id string) {
	snapshot := e.session.Current()
	if snapshot.CurrentAccountID != id {
		return
	}
	next := session.Snapshot{
		HasSession:       snapshot.HasSession,
		AccountIDs:       snapshot.AccountIDs,
		CurrentAccountID: "",
		Valid:            snapshot.Valid,
	}
	for _, candidate := range snapshot.AccountIDs {
		if candidate != id && !e.accounts.IsDisabled(candidate) {
			next.CurrentAccountID = candidate
			break
		}
	}
	e.session.Replace(next)
}

// LogoutAll describes the logoutall operation and its observable behavior.
//
// LogoutAll may return an error when input validation, dependency calls, or security checks fail.
// LogoutAll does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LogoutAll(ctx context.Context) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}

	_, remoteErr := e.transport.Post(ctx, pathLogoutAll, nil)
	if remoteErr != nil {
		// A partially failed bulk logout leaves the remote session
		// untrustworthy either way; the local clear happens regardless.
		log.Print("goAuthClient: remote logout-all failed, clearing local state anyway")
	}

	if e.notifier != nil {
		for id := range e.accounts.ListAll() {
			e.notifier.Unsubscribe(id)
		}
	}

	e.accounts.Clear()
	e.session.Clear()
	e.twoFactor.Delete()
	e.lockout.Stop()
	e.setPhase(PhaseIdle)
	e.setSessionError(nil)
	e.setGlobalError(nil)

	e.metricInc(MetricLogoutAll)
	e.emitAudit(ctx, auditEventLogoutAll, remoteErr == nil, "", remoteErr, nil)
	return remoteErr
}

// Reactivate describes the reactivate operation and its observable behavior.
//
// Reactivate may return an error when input validation, dependency calls, or security checks fail.
// Reactivate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Reactivate(ctx context.Context, id string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	// Only the client-side flag clears; the server-side session for a
	// disabled account is assumed invalidated, so the caller must drive a
	// fresh login for it.
	if !e.accounts.SetDisabled(id, false) {
		return ErrUnknownAccount
	}
	e.emitAudit(ctx, auditEventAccountReactivated, true, id, nil, nil)
	return nil
}

// Remove describes the remove operation and its observable behavior.
//
// Remove may return an error when input validation, dependency calls, or security checks fail.
// Remove does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Remove(ctx context.Context, id string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if id == "" {
		return ErrInvalidAccountID
	}
	// Permanent local purge, independent of server state ("forget this
	// device" semantics).
	if e.notifier != nil {
		e.notifier.Unsubscribe(id)
	}
	e.accounts.Remove(id)
	e.session.RemoveAccount(id, e.accounts.IsDisabled)
	e.metricInc(MetricAccountRemoved)
	e.emitAudit(ctx, auditEventAccountRemoved, true, id, nil, nil)
	return nil
}
