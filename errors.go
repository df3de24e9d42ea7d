package goAuthClient

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the session orchestrator.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrInvalidAccountID is an exported constant or variable used by the session orchestrator.
	ErrInvalidAccountID = errors.New("invalid account id")
	// ErrUnknownAccount is an exported constant or variable used by the session orchestrator.
	ErrUnknownAccount = errors.New("account not tracked by this client")
	// ErrAccountDisabled is an exported constant or variable used by the session orchestrator.
	ErrAccountDisabled = errors.New("account disabled on this client")
	// ErrNoCurrentAccount is an exported constant or variable used by the session orchestrator.
	ErrNoCurrentAccount = errors.New("no current account")
	// ErrNoSession is an exported constant or variable used by the session orchestrator.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidCredentials is an exported constant or variable used by the session orchestrator.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation is an exported constant or variable used by the session orchestrator.
	ErrValidation = errors.New("request validation failed")
	// ErrTwoFactorRequired is an exported constant or variable used by the session orchestrator.
	ErrTwoFactorRequired = errors.New("two-factor verification required")
	// ErrChallengeExpired is an exported constant or variable used by the session orchestrator.
	ErrChallengeExpired = errors.New("two-factor challenge expired")
	// ErrChallengeInvalidCode is an exported constant or variable used by the session orchestrator.
	ErrChallengeInvalidCode = errors.New("invalid two-factor code")
	// ErrChallengeMalformed is an exported constant or variable used by the session orchestrator.
	ErrChallengeMalformed = errors.New("malformed two-factor request")
	// ErrLockedOut is an exported constant or variable used by the session orchestrator.
	ErrLockedOut = errors.New("two-factor verification locked out")
	// ErrRetryCooldown is an exported constant or variable used by the session orchestrator.
	ErrRetryCooldown = errors.New("retry attempted before cooldown elapsed")
	// ErrRetryAttemptsExceeded is an exported constant or variable used by the session orchestrator.
	ErrRetryAttemptsExceeded = errors.New("retry attempts exceeded")
	// ErrNoRetryableFailure is an exported constant or variable used by the session orchestrator.
	ErrNoRetryableFailure = errors.New("no failed permission request to retry")
	// ErrProviderNotConfigured is an exported constant or variable used by the session orchestrator.
	ErrProviderNotConfigured = errors.New("oauth provider not configured")
	// ErrContinuationFailed is an exported constant or variable used by the session orchestrator.
	ErrContinuationFailed = errors.New("continuation handling failed")
	// ErrSessionRefreshFailed is an exported constant or variable used by the session orchestrator.
	ErrSessionRefreshFailed = errors.New("session refresh failed")
	// ErrTransportUnavailable is an exported constant or variable used by the session orchestrator.
	ErrTransportUnavailable = errors.New("transport backend unavailable")
)
