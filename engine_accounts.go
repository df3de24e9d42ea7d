package goAuthClient

import (
	"context"
	"encoding/json"
	"fmt"
)

// FetchAccount describes the fetchaccount operation and its observable behavior.
//
// FetchAccount may return an error when input validation, dependency calls, or security checks fail.
// FetchAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) FetchAccount(ctx context.Context, id string) (*Account, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}
	if !ValidAccountID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountID, id)
	}

	raw, err := e.transport.Get(ctx, pathAccounts+"/"+id)
	if err != nil {
		e.accounts.SetError(id, err)
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	if account.ID == "" {
		account.ID = id
	}
	e.accounts.SetFull(&account)
	return &account, nil
}

// UpdateAccount describes the updateaccount operation and its observable behavior.
//
// UpdateAccount may return an error when input validation, dependency calls, or security checks fail.
// UpdateAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) UpdateAccount(ctx context.Context, id string, update AccountUpdate) (*Account, error) {
	if e == nil || e.transport == nil {
		return nil, ErrEngineNotReady
	}
	if !ValidAccountID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountID, id)
	}
	if !e.accounts.Has(id) {
		return nil, ErrUnknownAccount
	}

	raw, err := e.transport.Patch(ctx, pathAccounts+"/"+id, updateBody(update))
	if err != nil {
		e.accounts.SetError(id, err)
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	if account.ID == "" {
		// Servers that return an empty body on PATCH still leave the
		// cache consistent through the local partial update.
		e.accounts.ApplyUpdate(id, update)
		state, _ := e.accounts.Get(id)
		return state.Account, nil
	}
	e.accounts.SetFull(&account)
	return &account, nil
}

func updateBody(update AccountUpdate) map[string]any {
	body := make(map[string]any)
	if update.Status != nil {
		body["status"] = *update.Status
	}
	if update.FirstName != nil {
		body["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		body["lastName"] = *update.LastName
	}
	if update.DisplayName != nil {
		body["displayName"] = *update.DisplayName
	}
	if update.Email != nil {
		body["email"] = *update.Email
	}
	if update.ImageURL != nil {
		body["imageUrl"] = *update.ImageURL
	}
	if update.EmailVerified != nil {
		body["emailVerified"] = *update.EmailVerified
	}
	if update.Security != nil {
		body["security"] = *update.Security
	}
	return body
}

// GetAccount describes the getaccount operation and its observable behavior.
//
// GetAccount may return an error when input validation, dependency calls, or security checks fail.
// GetAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetAccount(id string) (AccountState, bool) {
	if e == nil {
		return AccountState{}, false
	}
	return e.accounts.Get(id)
}

// ListActiveAccounts describes the listactiveaccounts operation and its observable behavior.
//
// ListActiveAccounts may return an error when input validation, dependency calls, or security checks fail.
// ListActiveAccounts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ListActiveAccounts() map[string]AccountState {
	if e == nil {
		return nil
	}
	return e.accounts.ListActive()
}

// ListDisabledAccounts describes the listdisabledaccounts operation and its observable behavior.
//
// ListDisabledAccounts may return an error when input validation, dependency calls, or security checks fail.
// ListDisabledAccounts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ListDisabledAccounts() map[string]AccountState {
	if e == nil {
		return nil
	}
	return e.accounts.ListDisabled()
}

// ListAllAccounts describes the listallaccounts operation and its observable behavior.
//
// ListAllAccounts may return an error when input validation, dependency calls, or security checks fail.
// ListAllAccounts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ListAllAccounts() map[string]AccountState {
	if e == nil {
		return nil
	}
	return e.accounts.ListAll()
}
