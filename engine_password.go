package goAuthClient

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goAuthClient/transport"
)

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// RequestPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	if _, err := e.transport.Post(ctx, pathPasswordResetRequest, map[string]string{"email": email}); err != nil {
		classified := classifyFieldError(err)
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, "", classified, nil)
		return classified
	}

	e.metricInc(MetricPasswordResetRequest)
	e.emitAudit(ctx, auditEventPasswordResetRequest, true, "", nil, nil)
	return nil
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if resetToken == "" || newPassword == "" {
		return fmt.Errorf("%w: reset token and new password are required", ErrValidation)
	}

	if _, err := e.transport.Post(ctx, pathPasswordReset, map[string]string{
		"token":       resetToken,
		"newPassword": newPassword,
	}); err != nil {
		classified := classifyFieldError(err)
		e.emitAudit(ctx, auditEventPasswordResetConfirm, false, "", classified, nil)
		return classified
	}

	e.metricInc(MetricPasswordResetConfirm)
	e.emitAudit(ctx, auditEventPasswordResetConfirm, true, "", nil, nil)
	return nil
}

// ChangePassword describes the changepassword operation and its observable behavior.
//
// ChangePassword may return an error when input validation, dependency calls, or security checks fail.
// ChangePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if e == nil || e.transport == nil {
		return ErrEngineNotReady
	}
	if accountID == "" {
		accountID = e.session.Current().CurrentAccountID
		if accountID == "" {
			return ErrNoCurrentAccount
		}
	}
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", ErrValidation)
	}

	if _, err := e.transport.Post(ctx, pathPasswordChange, map[string]string{
		"accountId":       accountID,
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}); err != nil {
		classified := classifyFieldError(err)
		e.accounts.SetError(accountID, classified)
		e.emitAudit(ctx, auditEventPasswordChange, false, accountID, classified, nil)
		return classified
	}

	e.metricInc(MetricPasswordChange)
	e.emitAudit(ctx, auditEventPasswordChange, true, accountID, nil, nil)
	return nil
}

// classifyFieldError keeps server-supplied field-level validation messages
// reachable through the error chain while mapping the error class onto the
// package sentinels.
func classifyFieldError(err error) error {
	if apiErr, ok := transport.AsAPIError(err); ok {
		switch apiErr.Code {
		case apiCodeValidation, apiCodeMalformedRequest:
			return fmt.Errorf("%w: %w", ErrValidation, apiErr)
		case apiCodeInvalidCredentials:
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, apiErr)
		case apiCodeTwoFactorRequired:
			// Step-up refusal on a sensitive operation. The caller runs
			// the two-factor flow and repeats the request.
			return fmt.Errorf("%w: %w", ErrTwoFactorRequired, apiErr)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransportUnavailable, err)
}
