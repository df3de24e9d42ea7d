package goAuthClient

import (
	"context"
	"encoding/json"
	"fmt"
)

type signupResponse struct {
	AccountID           string   `json:"accountId"`
	Account             *Account `json:"account"`
	PendingVerification bool     `json:"pendingVerification"`
}

// Signup describes the signup operation and its observable behavior.
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Signup(ctx context.Context, req SignupRequest) (*LoginResult, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	e.setPhase(PhaseAuthenticating)

	raw, err := e.transport.Post(ctx, pathSignup, map[string]string{
		"email":     req.Email,
		"password":  req.Password,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	})
	if err != nil {
		classified := classifyFieldError(err)
		e.setPhase(PhaseFailed)
		e.setGlobalError(classified)
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, "", classified, func() map[string]string {
			return map[string]string{"email": req.Email}
		})
		return nil, classified
	}

	var resp signupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		e.setPhase(PhaseFailed)
		e.setGlobalError(err)
		e.metricInc(MetricSignupFailure)
		return nil, fmt.Errorf("decode signup response: %w", err)
	}

	// The authority may withhold the session until the address is verified.
	// No account commit happens in that case; the email link lands back in
	// HandleContinuation.
	if resp.PendingVerification {
		e.setPhase(PhaseIdle)
		e.setGlobalError(nil)
		e.emitAudit(ctx, auditEventSignupSuccess, true, resp.AccountID, nil, func() map[string]string {
			return map[string]string{"pendingVerification": "true"}
		})
		return &LoginResult{
			Phase:               PhaseIdle,
			AccountID:           resp.AccountID,
			PendingVerification: true,
		}, nil
	}

	e.commitAccount(ctx, resp.AccountID, resp.Account)
	e.setPhase(PhaseSuccess)
	e.setGlobalError(nil)
	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, auditEventSignupSuccess, true, resp.AccountID, nil, nil)

	return &LoginResult{
		Phase:     PhaseSuccess,
		AccountID: resp.AccountID,
		Account:   resp.Account,
	}, nil
}
