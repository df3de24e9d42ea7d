package goAuthClient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goAuthClient/internal/stores"
	"github.com/MrEthical07/goAuthClient/token"
	"github.com/MrEthical07/goAuthClient/transport"
)

// VerifyTwoFactor describes the verifytwofactor operation and its observable behavior.
//
// VerifyTwoFactor may return an error when input validation, dependency calls, or security checks fail.
// VerifyTwoFactor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyTwoFactor(ctx context.Context, code string, isBackupCode bool) (*LoginResult, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}

	// Lockout is a pure client-side throttle in front of the server's own
	// rate limiting: while it runs, no network call is made.
	if e.lockout.Active() {
		return nil, ErrLockedOut
	}

	challenge, err := e.twoFactor.Get()
	if err != nil {
		return nil, ErrChallengeExpired
	}
	if code == "" {
		return nil, fmt.Errorf("%w: verification code is required", ErrValidation)
	}

	// An already-expired temp token needs no round trip to fail.
	if token.Expired(challenge.TempToken, time.Now()) {
		e.twoFactor.Delete()
		e.setPhase(PhaseFailed)
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, challenge.AccountID, ErrChallengeExpired, nil)
		return nil, ErrChallengeExpired
	}

	e.setPhase(PhaseAuthenticating)

	raw, err := e.transport.Post(ctx, pathTwoFactorVerify, map[string]any{
		"tempToken":    challenge.TempToken,
		"code":         code,
		"isBackupCode": isBackupCode,
	})
	if err != nil {
		return nil, e.handleTwoFactorFailure(ctx, challenge, err)
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		e.setPhase(PhaseFailed)
		return nil, fmt.Errorf("decode two-factor response: %w", err)
	}
	if resp.AccountID == "" && resp.Account != nil {
		resp.AccountID = resp.Account.ID
	}

	e.twoFactor.Delete()
	e.lockout.Stop()
	e.commitAccount(ctx, resp.AccountID, resp.Account)
	e.setPhase(PhaseSuccess)
	e.setGlobalError(nil)
	e.metricInc(MetricTwoFactorSuccess)
	e.emitAudit(ctx, auditEventTwoFactorSuccess, true, resp.AccountID, nil, func() map[string]string {
		return map[string]string{"backup_code": strconv.FormatBool(isBackupCode)}
	})

	return &LoginResult{
		Phase:     PhaseSuccess,
		AccountID: resp.AccountID,
		Account:   resp.Account,
	}, nil
}

func (e *Engine) handleTwoFactorFailure(ctx context.Context, challenge stores.TwoFactorChallenge, cause error) error {
	classified := classifyTwoFactorError(cause)

	// An expired challenge dies immediately, remaining attempts or not.
	if errors.Is(classified, ErrChallengeExpired) {
		e.twoFactor.Delete()
		e.setPhase(PhaseFailed)
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, challenge.AccountID, classified, nil)
		return classified
	}

	remaining, recordErr := e.twoFactor.RecordFailure()
	if errors.Is(recordErr, stores.ErrChallengeExceeded) {
		until := e.lockout.Trigger()
		e.setPhase(PhaseLockedOut)
		e.metricInc(MetricTwoFactorLockout)
		e.emitAudit(ctx, auditEventTwoFactorLockout, false, challenge.AccountID, classified, func() map[string]string {
			return map[string]string{"locked_until": until.Format(time.RFC3339)}
		})
		return errors.Join(ErrLockedOut, classified)
	}

	e.setPhase(PhaseFailed)
	e.metricInc(MetricTwoFactorFailure)
	e.emitAudit(ctx, auditEventTwoFactorFailure, false, challenge.AccountID, classified, func() map[string]string {
		return map[string]string{"attempts_remaining": strconv.Itoa(remaining)}
	})
	return classified
}

func classifyTwoFactorError(err error) error {
	if apiErr, ok := transport.AsAPIError(err); ok {
		switch apiErr.Code {
		case apiCodeInvalidTwoFactor:
			return fmt.Errorf("%w: %s", ErrChallengeInvalidCode, apiErr.Message)
		case apiCodeTokenExpired, apiCodeSessionExpired:
			return fmt.Errorf("%w: %s", ErrChallengeExpired, apiErr.Message)
		case apiCodeMalformedRequest, apiCodeValidation:
			return fmt.Errorf("%w: %s", ErrChallengeMalformed, apiErr.Message)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
}

// CancelTwoFactor describes the canceltwofactor operation and its observable behavior.
//
// CancelTwoFactor may return an error when input validation, dependency calls, or security checks fail.
// CancelTwoFactor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CancelTwoFactor(ctx context.Context) {
	if e == nil {
		return
	}
	challenge, err := e.twoFactor.Get()
	e.twoFactor.Delete()
	e.lockout.Stop()
	e.setPhase(PhaseIdle)
	if err == nil {
		e.emitAudit(ctx, auditEventTwoFactorCancelled, true, challenge.AccountID, nil, nil)
	}
}

// TwoFactorStatus describes the twofactorstatus operation and its observable behavior.
//
// TwoFactorStatus may return an error when input validation, dependency calls, or security checks fail.
// TwoFactorStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) TwoFactorStatus() TwoFactorStatus {
	if e == nil {
		return TwoFactorStatus{}
	}
	status := TwoFactorStatus{LockedUntil: e.lockout.Until()}
	challenge, err := e.twoFactor.Get()
	if err == nil {
		status.Live = true
		status.AccountID = challenge.AccountID
		status.AttemptsRemaining = challenge.AttemptsRemaining
	}
	return status
}

func (e *Engine) lockoutExpired() {
	// Timer callback: the countdown elapsed, attempts budget refreshes
	// with the next challenge, the machine returns to idle.
	e.mu.Lock()
	wasLocked := e.phase == PhaseLockedOut
	if wasLocked {
		e.phase = PhaseIdle
	}
	e.mu.Unlock()
	if wasLocked {
		e.emitAudit(context.Background(), auditEventTwoFactorCancelled, true, "", nil, func() map[string]string {
			return map[string]string{"reason": "lockout_elapsed"}
		})
	}
}
