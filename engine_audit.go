package goAuthClient

import (
	"context"
	"time"

	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
)

const (
	auditEventLoginSuccess           = "login_success"
	auditEventLoginFailure           = "login_failure"
	auditEventSignupSuccess          = "signup_success"
	auditEventSignupFailure          = "signup_failure"
	auditEventTwoFactorRequired      = "two_factor_required"
	auditEventTwoFactorSuccess       = "two_factor_success"
	auditEventTwoFactorFailure       = "two_factor_failure"
	auditEventTwoFactorLockout       = "two_factor_lockout"
	auditEventTwoFactorCancelled     = "two_factor_cancelled"
	auditEventPasswordResetRequest   = "password_reset_request"
	auditEventPasswordResetConfirm   = "password_reset_confirm"
	auditEventPasswordChange         = "password_change"
	auditEventSessionRefresh         = "session_refresh"
	auditEventSessionRefreshFailure  = "session_refresh_failure"
	auditEventCurrentAccountChanged  = "current_account_changed"
	auditEventAccountSwitchRejected  = "account_switch_rejected"
	auditEventLogoutSession          = "logout_session"
	auditEventLogoutDisable          = "logout_disable"
	auditEventLogoutAll              = "logout_all"
	auditEventAccountReactivated     = "account_reactivated"
	auditEventAccountRemoved         = "account_removed"
	auditEventOAuthRedirectStarted   = "oauth_redirect_started"
	auditEventContinuationProcessed  = "continuation_processed"
	auditEventContinuationError      = "continuation_error"
	auditEventPermissionRetry        = "permission_retry"
	auditEventPermissionRetryBlocked = "permission_retry_blocked"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	accountID string,
	err error,
	metaFn func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := internalaudit.Event{
		Timestamp: time.Now(),
		EventType: eventType,
		AccountID: accountID,
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if metaFn != nil {
		event.Metadata = metaFn()
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
