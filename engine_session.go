package goAuthClient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/MrEthical07/goAuthClient/session"
)

// RefreshSession describes the refreshsession operation and its observable behavior.
//
// RefreshSession may return an error when input validation, dependency calls, or security checks fail.
// RefreshSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RefreshSession(ctx context.Context) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}

	raw, err := e.transport.Get(ctx, pathSession)
	if err != nil {
		// Prior session data stays intact; the failure lands in the
		// session error slot and retrying is the caller's policy.
		refreshErr := fmt.Errorf("%w: %v", ErrSessionRefreshFailed, err)
		e.setSessionError(refreshErr)
		e.metricInc(MetricSessionRefreshFailure)
		e.emitAudit(ctx, auditEventSessionRefreshFailure, false, "", refreshErr, nil)
		return refreshErr
	}

	var doc sessionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		refreshErr := fmt.Errorf("%w: decode session document: %v", ErrSessionRefreshFailed, err)
		e.setSessionError(refreshErr)
		e.metricInc(MetricSessionRefreshFailure)
		return refreshErr
	}

	snapshot := e.session.Replace(session.Snapshot{
		HasSession:       doc.HasSession,
		AccountIDs:       doc.AccountIDs,
		CurrentAccountID: doc.CurrentAccountID,
		Valid:            doc.IsValid,
	})

	if len(snapshot.AccountIDs) > 0 {
		e.fetchSummaries(ctx, snapshot.AccountIDs)
	}

	e.setSessionError(nil)
	e.metricInc(MetricSessionRefreshSuccess)
	e.emitAudit(ctx, auditEventSessionRefresh, true, snapshot.CurrentAccountID, nil, func() map[string]string {
		return map[string]string{"accounts": strings.Join(snapshot.AccountIDs, ",")}
	})
	return nil
}

// fetchSummaries batch-fetches summary projections. Partial success is the
// policy: a summary that fails to arrive is logged and skipped, never
// failing the refresh that requested it.
func (e *Engine) fetchSummaries(ctx context.Context, ids []string) {
	path := pathAccountSummaries + "?ids=" + url.QueryEscape(strings.Join(ids, ","))
	raw, err := e.transport.Get(ctx, path)
	if err != nil {
		log.Print("goAuthClient: account summary batch fetch failed")
		for _, id := range ids {
			e.accounts.SetError(id, err)
		}
		return
	}

	var resp summariesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Print("goAuthClient: account summary batch decode failed")
		return
	}

	for i := range resp.Summaries {
		e.accounts.SetSummary(&resp.Summaries[i])
	}
}

// Session describes the session operation and its observable behavior.
//
// Session may return an error when input validation, dependency calls, or security checks fail.
// Session does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Session() session.Snapshot {
	if e == nil {
		return session.Snapshot{}
	}
	return e.session.Current()
}

// SetCurrentAccount describes the setcurrentaccount operation and its observable behavior.
//
// SetCurrentAccount may return an error when input validation, dependency calls, or security checks fail.
// SetCurrentAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetCurrentAccount(ctx context.Context, id string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if id == "" {
		return fmt.Errorf("%w: account id is required", ErrValidation)
	}

	// Consistency checks run before any network call.
	if !e.session.Current().HasSession {
		return ErrNoSession
	}
	if !e.session.Current().Contains(id) {
		e.metricInc(MetricAccountSwitchRejected)
		e.emitAudit(ctx, auditEventAccountSwitchRejected, false, id, ErrUnknownAccount, nil)
		return ErrUnknownAccount
	}
	if e.accounts.IsDisabled(id) {
		e.metricInc(MetricAccountSwitchRejected)
		e.emitAudit(ctx, auditEventAccountSwitchRejected, false, id, ErrAccountDisabled, nil)
		return ErrAccountDisabled
	}

	// The server is authoritative for "current": the local pointer moves
	// only after the authority accepted the change.
	if _, err := e.transport.Post(ctx, pathSessionCurrent, map[string]string{"accountId": id}); err != nil {
		e.emitAudit(ctx, auditEventAccountSwitchRejected, false, id, err, nil)
		return err
	}

	e.session.SetCurrentAccount(id)
	e.metricInc(MetricAccountSwitch)
	e.emitAudit(ctx, auditEventCurrentAccountChanged, true, id, nil, nil)
	return nil
}

// CurrentAccount describes the currentaccount operation and its observable behavior.
//
// CurrentAccount may return an error when input validation, dependency calls, or security checks fail.
// CurrentAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CurrentAccount() (AccountState, bool) {
	if e == nil {
		return AccountState{}, false
	}
	current := e.session.Current().CurrentAccountID
	if current == "" {
		return AccountState{}, false
	}
	return e.accounts.Get(current)
}
