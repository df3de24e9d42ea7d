package goAuthClient

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/MrEthical07/goAuthClient/internal/continuation"
	"github.com/MrEthical07/goAuthClient/internal/limiters"
	"github.com/MrEthical07/goAuthClient/transport"
)

// StartOAuth describes the startoauth operation and its observable behavior.
//
// StartOAuth may return an error when input validation, dependency calls, or security checks fail.
// StartOAuth does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StartOAuth(ctx context.Context, provider string, intent OAuthIntent) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	switch intent {
	case IntentSignup, IntentSignin, IntentPermission, IntentReauthorize:
	default:
		return "", fmt.Errorf("%w: unknown oauth intent %q", ErrValidation, intent)
	}

	providerCfg, ok := e.config.OAuth.Providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
	}

	oc := oauth2.Config{
		ClientID:    providerCfg.ClientID,
		RedirectURL: e.config.OAuth.CallbackURL,
		Scopes:      append([]string(nil), providerCfg.Scopes...),
		Endpoint: oauth2.Endpoint{
			AuthURL:  providerCfg.AuthURL,
			TokenURL: providerCfg.TokenURL,
		},
	}

	// The authority validates state server-side; this client only has to
	// make it unguessable and single-use.
	state := uuid.NewString()
	redirectURL := oc.AuthCodeURL(state,
		oauth2.SetAuthURLParam("intent", string(intent)),
	)

	e.emitAudit(ctx, auditEventOAuthRedirectStarted, true, "", nil, func() map[string]string {
		return map[string]string{"provider": provider, "intent": string(intent)}
	})
	return redirectURL, nil
}

// HandleContinuation describes the handlecontinuation operation and its observable behavior.
//
// HandleContinuation may return an error when input validation, dependency calls, or security checks fail.
// HandleContinuation does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) HandleContinuation(ctx context.Context, rawQuery string) (result *ContinuationResult, err error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	// A continuation handler that panics would strand the query string in
	// the address bar and re-fire on reload. Whatever happens inside, the
	// caller gets a result that tells it to clean the URL.
	defer func() {
		if r := recover(); r != nil {
			result = &ContinuationResult{
				Code:     CodeUnknown,
				Outcome:  OutcomeError,
				Message:  "continuation processing failed",
				CleanURL: true,
			}
			err = fmt.Errorf("%w: %v", ErrContinuationFailed, r)
			e.setGlobalError(err)
			e.metricInc(MetricContinuationError)
			e.emitAudit(ctx, auditEventContinuationError, false, "", err, nil)
		}
	}()

	event, ok := continuation.Parse(rawQuery)
	if !ok {
		return nil, nil
	}

	e.mu.Lock()
	if rawQuery != "" && rawQuery == e.lastContinuation {
		e.mu.Unlock()
		return nil, nil
	}
	e.lastContinuation = rawQuery
	e.mu.Unlock()

	result = e.dispatchContinuation(ctx, event)
	result.CleanURL = true

	if result.Outcome == OutcomeError {
		e.metricInc(MetricContinuationError)
		e.emitAudit(ctx, auditEventContinuationError, false, result.AccountID, errors.New(result.Message), func() map[string]string {
			return map[string]string{"code": string(result.Code)}
		})
	} else {
		e.metricInc(MetricContinuationProcessed)
		e.emitAudit(ctx, auditEventContinuationProcessed, true, result.AccountID, nil, func() map[string]string {
			return map[string]string{"code": string(result.Code)}
		})
	}
	return result, nil
}

func (e *Engine) dispatchContinuation(ctx context.Context, event continuation.Event) *ContinuationResult {
	result := &ContinuationResult{
		Code:       event.Code,
		AccountID:  event.AccountID,
		AccountIDs: event.AccountIDs,
		Provider:   event.Provider,
		Message:    event.Message,
	}

	switch event.Code {
	case CodeOAuthSigninSuccess, CodeOAuthSignupSuccess,
		CodeLocalSigninSuccess, CodeLocalSignupSuccess:
		// The callback carries enough for a summary entry; the session
		// refresh and a later full fetch flesh it out.
		if event.AccountID != "" {
			kind := KindLocal
			if event.Code == CodeOAuthSigninSuccess || event.Code == CodeOAuthSignupSuccess {
				kind = KindOAuth
			}
			e.accounts.SetSummary(&AccountSummary{
				ID:          event.AccountID,
				Kind:        kind,
				Status:      StatusActive,
				DisplayName: event.Name,
				Email:       event.Email,
			})
		}
		e.commitAccount(ctx, event.AccountID, nil)
		e.setPhase(PhaseSuccess)
		e.setGlobalError(nil)
		e.metricInc(MetricLoginSuccess)
		result.Outcome = OutcomeCommitted

	case CodeOAuthPermissionSuccess:
		e.permRetry.Reset()
		if err := e.RefreshSession(ctx); err != nil {
			log.Print("goAuthClient: session refresh after permission grant failed")
		}
		result.Outcome = OutcomeCommitted

	case CodeLocalTwoFactorRequired:
		e.twoFactor.Put(event.TempToken, event.AccountID, e.config.TwoFactor.MaxAttempts)
		e.setPhase(PhaseRequiresTwoFactor)
		e.metricInc(MetricTwoFactorRequired)
		result.Outcome = OutcomeTwoFactorRequired

	case CodeLocalEmailVerified:
		verified := true
		e.accounts.ApplyUpdate(event.AccountID, AccountUpdate{EmailVerified: &verified})
		if err := e.RefreshSession(ctx); err != nil {
			log.Print("goAuthClient: session refresh after email verification failed")
		}
		result.Outcome = OutcomeInformational

	case CodeLocalPasswordResetSuccess:
		result.Outcome = OutcomeInformational

	case CodeLogoutSuccess:
		if event.AccountID != "" {
			if event.ClearClientState {
				if e.notifier != nil {
					e.notifier.Unsubscribe(event.AccountID)
				}
				e.accounts.Remove(event.AccountID)
				e.session.RemoveAccount(event.AccountID, e.accounts.IsDisabled)
			} else {
				e.accounts.SetDisabled(event.AccountID, true)
				e.repointCurrentAway(event.AccountID)
			}
		}
		result.Outcome = OutcomeCommitted

	case CodeLogoutDisableSuccess:
		if event.AccountID != "" {
			e.accounts.SetDisabled(event.AccountID, true)
			e.repointCurrentAway(event.AccountID)
		}
		result.Outcome = OutcomeCommitted

	case CodeLogoutAllSuccess:
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
		result.Outcome = OutcomeCommitted

	case CodePermissionError:
		e.permRetry.RecordFailure()
		result.Outcome = OutcomeError

	case CodeTokenExpired:
		// The pending challenge rode the expired token; nothing left to
		// verify against.
		e.twoFactor.Delete()
		e.setPhase(PhaseFailed)
		result.Outcome = OutcomeError

	case CodePermissionReauthorize:
		result.Outcome = OutcomeActionRequired

	case CodeAccountSelectionRequired:
		result.Outcome = OutcomeActionRequired

	case CodeOAuthError, CodeLocalAuthError, CodeInvalidState,
		CodeUserNotFound, CodeUserExists:
		e.setPhase(PhaseFailed)
		e.setGlobalError(fmt.Errorf("authentication continuation failed: %s", event.Code))
		result.Outcome = OutcomeError

	default:
		result.Outcome = OutcomeError
		if result.Message == "" {
			result.Message = "unrecognized continuation code"
		}
	}

	return result
}

// RequestPermission describes the requestpermission operation and its observable behavior.
//
// RequestPermission may return an error when input validation, dependency calls, or security checks fail.
// RequestPermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RequestPermission(ctx context.Context, provider string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if provider == "" {
		return fmt.Errorf("%w: provider is required", ErrValidation)
	}

	if _, err := e.transport.Post(ctx, pathPermissionGrant, map[string]string{
		"provider": provider,
	}); err != nil {
		e.permRetry.RecordFailure()
		classified := classifyPermissionError(err)
		e.emitAudit(ctx, auditEventPermissionRetry, false, "", classified, func() map[string]string {
			return map[string]string{"provider": provider}
		})
		return classified
	}

	e.permRetry.Reset()
	return nil
}

// RetryPermission describes the retrypermission operation and its observable behavior.
//
// RetryPermission may return an error when input validation, dependency calls, or security checks fail.
// RetryPermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RetryPermission(ctx context.Context, provider string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}

	if err := e.permRetry.Acquire(); err != nil {
		e.metricInc(MetricPermissionRetryRejected)
		mapped := mapRetryGateError(err)
		e.emitAudit(ctx, auditEventPermissionRetryBlocked, false, "", mapped, func() map[string]string {
			return map[string]string{"provider": provider}
		})
		return mapped
	}

	e.metricInc(MetricPermissionRetry)
	return e.RequestPermission(ctx, provider)
}

func mapRetryGateError(err error) error {
	switch {
	case errors.Is(err, limiters.ErrCooldown):
		return ErrRetryCooldown
	case errors.Is(err, limiters.ErrAttemptsExhausted):
		return ErrRetryAttemptsExceeded
	case errors.Is(err, limiters.ErrNothingToRetry):
		return ErrNoRetryableFailure
	}
	return err
}

func classifyPermissionError(err error) error {
	if _, ok := transport.AsAPIError(err); ok {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
}
