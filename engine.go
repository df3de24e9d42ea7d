package goAuthClient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/MrEthical07/goAuthClient/internal/accounts"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/limiters"
	"github.com/MrEthical07/goAuthClient/internal/stores"
	"github.com/MrEthical07/goAuthClient/session"
	"github.com/MrEthical07/goAuthClient/transport"
)

// Authority endpoint layout. Paths are relative to the transport base URL.
const (
	pathSession              = "/auth/session"
	pathSessionCurrent       = "/auth/session/current"
	pathLogin                = "/auth/login"
	pathSignup               = "/auth/signup"
	pathTwoFactorVerify      = "/auth/2fa/verify"
	pathPasswordResetRequest = "/auth/password/reset-request"
	pathPasswordReset        = "/auth/password/reset"
	pathPasswordChange       = "/auth/password/change"
	pathLogout               = "/auth/logout"
	pathLogoutAll            = "/auth/logout/all"
	pathAccounts             = "/auth/accounts"
	pathAccountSummaries     = "/auth/accounts/summaries"
	pathPermissionGrant      = "/auth/oauth/permission"
)

// Error codes the authority uses inside its error envelope. Classification
// into sentinel errors happens here, never in the transport.
const (
	apiCodeInvalidCredentials = "INVALID_CREDENTIALS"
	apiCodeInvalidTwoFactor   = "INVALID_2FA_CODE"
	apiCodeTokenExpired       = "TOKEN_EXPIRED"
	apiCodeSessionExpired     = "2FA_SESSION_EXPIRED"
	apiCodeMalformedRequest   = "MALFORMED_REQUEST"
	apiCodeValidation         = "VALIDATION_ERROR"
	apiCodeTwoFactorRequired  = "2FA_REQUIRED"
)

// Engine defines a public type used by goAuthClient APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	transport transport.Client
	notifier  Notifier

	accounts  *accounts.Store
	session   *session.Store
	twoFactor *stores.TwoFactorStore
	lockout   *limiters.Lockout
	permRetry *limiters.PermissionRetry
	audit     *internalaudit.Dispatcher
	metrics   *Metrics

	mu         sync.Mutex
	phase      Phase
	sessionErr error
	globalErr  error

	// lastContinuation dedupes callback processing when the host delivers
	// the same query string twice before cleaning the URL.
	lastContinuation string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.lockout != nil {
		e.lockout.Stop()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	// A new login supersedes any unfinished challenge: the last login
	// response wins ownership of the two-factor singleton.
	e.twoFactor.Delete()
	e.lockout.Stop()
	e.setPhase(PhaseAuthenticating)

	raw, err := e.transport.Post(ctx, pathLogin, map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		classified := classifyLoginError(err)
		e.setPhase(PhaseFailed)
		e.setGlobalError(classified)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", classified, func() map[string]string {
			return map[string]string{"email": creds.Email}
		})
		return nil, classified
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		e.setPhase(PhaseFailed)
		e.setGlobalError(err)
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if resp.RequiresTwoFactor {
		e.twoFactor.Put(resp.TempToken, resp.AccountID, e.config.TwoFactor.MaxAttempts)
		e.setPhase(PhaseRequiresTwoFactor)
		e.metricInc(MetricTwoFactorRequired)
		e.emitAudit(ctx, auditEventTwoFactorRequired, true, resp.AccountID, nil, nil)
		return &LoginResult{
			Phase:             PhaseRequiresTwoFactor,
			AccountID:         resp.AccountID,
			RequiresTwoFactor: true,
		}, nil
	}

	e.commitAccount(ctx, resp.AccountID, resp.Account)
	e.setPhase(PhaseSuccess)
	e.setGlobalError(nil)
	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, resp.AccountID, nil, nil)

	return &LoginResult{
		Phase:     PhaseSuccess,
		AccountID: resp.AccountID,
		Account:   resp.Account,
	}, nil
}

// commitAccount stores the authenticated account, subscribes the real-time
// channel, and reconciles the session. A failed reconcile never rolls back
// the commit; it lands in the session error slot for the caller's retry
// policy.
func (e *Engine) commitAccount(ctx context.Context, accountID string, account *Account) {
	if account != nil {
		e.accounts.SetFull(account)
		if accountID == "" {
			accountID = account.ID
		}
	}
	if accountID != "" && e.notifier != nil {
		e.notifier.Subscribe(accountID)
	}
	if e.config.Session.RefreshOnCommit {
		if err := e.RefreshSession(ctx); err != nil {
			log.Print("goAuthClient: session refresh after commit failed")
		}
	}
}

func classifyLoginError(err error) error {
	if apiErr, ok := transport.AsAPIError(err); ok {
		switch apiErr.Code {
		case apiCodeInvalidCredentials:
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		case apiCodeValidation, apiCodeMalformedRequest:
			return fmt.Errorf("%w: %s", ErrValidation, apiErr.Message)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
}

func (e *Engine) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}

// Phase describes the phase operation and its observable behavior.
//
// Phase may return an error when input validation, dependency calls, or security checks fail.
// Phase does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Phase() Phase {
	if e == nil {
		return PhaseIdle
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Engine) setGlobalError(err error) {
	e.mu.Lock()
	e.globalErr = err
	e.mu.Unlock()
}

func (e *Engine) setSessionError(err error) {
	e.mu.Lock()
	e.sessionErr = err
	e.mu.Unlock()
}

// GlobalError describes the globalerror operation and its observable behavior.
//
// GlobalError may return an error when input validation, dependency calls, or security checks fail.
// GlobalError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GlobalError() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.globalErr
}

// SessionError describes the sessionerror operation and its observable behavior.
//
// SessionError may return an error when input validation, dependency calls, or security checks fail.
// SessionError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SessionError() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionErr
}

// AccountError describes the accounterror operation and its observable behavior.
//
// AccountError may return an error when input validation, dependency calls, or security checks fail.
// AccountError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AccountError(id string) error {
	if e == nil {
		return nil
	}
	state, ok := e.accounts.Get(id)
	if !ok {
		return nil
	}
	return state.Err
}

type loginResponse struct {
	RequiresTwoFactor bool     `json:"requiresTwoFactor"`
	TempToken         string   `json:"tempToken"`
	AccountID         string   `json:"accountId"`
	Account           *Account `json:"account"`
}

type sessionDocument struct {
	HasSession       bool     `json:"hasSession"`
	AccountIDs       []string `json:"accountIds"`
	CurrentAccountID string   `json:"currentAccountId"`
	IsValid          bool     `json:"isValid"`
}

type summariesResponse struct {
	Summaries []AccountSummary `json:"summaries"`
}
