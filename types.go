package goAuthClient

import (
	"io"
	"time"

	"github.com/MrEthical07/goAuthClient/internal/accounts"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/continuation"
)

// AccountKind discriminates how an account authenticates (local password or
// an external OAuth provider).
type AccountKind = accounts.Kind

const (
	// KindLocal is an exported constant or variable used by the session orchestrator.
	KindLocal = accounts.KindLocal
	// KindOAuth is an exported constant or variable used by the session orchestrator.
	KindOAuth = accounts.KindOAuth
)

// AccountStatus is the server-owned lifecycle status of an account.
type AccountStatus = accounts.Status

const (
	// StatusActive is an exported constant or variable used by the session orchestrator.
	StatusActive = accounts.StatusActive
	// StatusInactive is an exported constant or variable used by the session orchestrator.
	StatusInactive = accounts.StatusInactive
	// StatusSuspended is an exported constant or variable used by the session orchestrator.
	StatusSuspended = accounts.StatusSuspended
)

// Account is the full server-owned account record cached by this client.
type Account = accounts.Account

// AccountSummary is the reduced projection fetched alongside the session.
type AccountSummary = accounts.Summary

// AccountState is the single cache entry tracked per account id: data,
// disabled overlay, error slot, and freshness.
type AccountState = accounts.State

// AccountUpdate is a caller-scoped partial mutation of a cached account.
type AccountUpdate = accounts.Update

// SecurityInfo is the security block of a full account record.
type SecurityInfo = accounts.SecurityInfo

// Phase is the authentication state machine position for the in-flight
// operation. It is independent of Session state: requires-two-factor means
// the user is not yet authenticated.
type Phase uint8

const (
	// PhaseIdle is an exported constant or variable used by the session orchestrator.
	PhaseIdle Phase = iota
	// PhaseAuthenticating is an exported constant or variable used by the session orchestrator.
	PhaseAuthenticating
	// PhaseSuccess is an exported constant or variable used by the session orchestrator.
	PhaseSuccess
	// PhaseRequiresTwoFactor is an exported constant or variable used by the session orchestrator.
	PhaseRequiresTwoFactor
	// PhaseFailed is an exported constant or variable used by the session orchestrator.
	PhaseFailed
	// PhaseLockedOut is an exported constant or variable used by the session orchestrator.
	PhaseLockedOut
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseSuccess:
		return "success"
	case PhaseRequiresTwoFactor:
		return "requires_two_factor"
	case PhaseFailed:
		return "failed"
	case PhaseLockedOut:
		return "locked_out"
	default:
		return "unknown"
	}
}

// Credentials is the input for [Engine.Login].
type Credentials struct {
	Email    string
	Password string
}

// SignupRequest is the input for [Engine.Signup].
type SignupRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is returned by [Engine.Login], [Engine.Signup], and
// [Engine.VerifyTwoFactor]. When RequiresTwoFactor is set no account has
// been committed and the Session is untouched.
type LoginResult struct {
	Phase     Phase
	AccountID string
	Account   *Account

	RequiresTwoFactor bool

	// PendingVerification is set on signup when the authority requires
	// email verification before the first login completes.
	PendingVerification bool
}

// TwoFactorStatus is a read-only snapshot of the live two-factor challenge
// and lockout state.
type TwoFactorStatus struct {
	Live              bool
	AccountID         string
	AttemptsRemaining int
	LockedUntil       time.Time
}

// OAuthIntent records why an outbound OAuth redirect was started; it rides
// the redirect URL and comes back on the continuation.
type OAuthIntent string

const (
	// IntentSignup is an exported constant or variable used by the session orchestrator.
	IntentSignup OAuthIntent = "signup"
	// IntentSignin is an exported constant or variable used by the session orchestrator.
	IntentSignin OAuthIntent = "signin"
	// IntentPermission is an exported constant or variable used by the session orchestrator.
	IntentPermission OAuthIntent = "permission"
	// IntentReauthorize is an exported constant or variable used by the session orchestrator.
	IntentReauthorize OAuthIntent = "reauthorize"
)

// ContinuationCode is the discriminated outcome code carried by an inbound
// continuation query string.
type ContinuationCode = continuation.Code

const (
	// CodeOAuthSigninSuccess is an exported constant or variable used by the session orchestrator.
	CodeOAuthSigninSuccess = continuation.CodeOAuthSigninSuccess
	// CodeOAuthSignupSuccess is an exported constant or variable used by the session orchestrator.
	CodeOAuthSignupSuccess = continuation.CodeOAuthSignupSuccess
	// CodeOAuthPermissionSuccess is an exported constant or variable used by the session orchestrator.
	CodeOAuthPermissionSuccess = continuation.CodeOAuthPermissionSuccess
	// CodeLocalSigninSuccess is an exported constant or variable used by the session orchestrator.
	CodeLocalSigninSuccess = continuation.CodeLocalSigninSuccess
	// CodeLocalSignupSuccess is an exported constant or variable used by the session orchestrator.
	CodeLocalSignupSuccess = continuation.CodeLocalSignupSuccess
	// CodeLocalTwoFactorRequired is an exported constant or variable used by the session orchestrator.
	CodeLocalTwoFactorRequired = continuation.CodeLocalTwoFactorRequired
	// CodeLocalEmailVerified is an exported constant or variable used by the session orchestrator.
	CodeLocalEmailVerified = continuation.CodeLocalEmailVerified
	// CodeLocalPasswordResetSuccess is an exported constant or variable used by the session orchestrator.
	CodeLocalPasswordResetSuccess = continuation.CodeLocalPasswordResetSuccess
	// CodeLogoutSuccess is an exported constant or variable used by the session orchestrator.
	CodeLogoutSuccess = continuation.CodeLogoutSuccess
	// CodeLogoutDisableSuccess is an exported constant or variable used by the session orchestrator.
	CodeLogoutDisableSuccess = continuation.CodeLogoutDisableSuccess
	// CodeLogoutAllSuccess is an exported constant or variable used by the session orchestrator.
	CodeLogoutAllSuccess = continuation.CodeLogoutAllSuccess
	// CodeOAuthError is an exported constant or variable used by the session orchestrator.
	CodeOAuthError = continuation.CodeOAuthError
	// CodeLocalAuthError is an exported constant or variable used by the session orchestrator.
	CodeLocalAuthError = continuation.CodeLocalAuthError
	// CodePermissionError is an exported constant or variable used by the session orchestrator.
	CodePermissionError = continuation.CodePermissionError
	// CodeInvalidState is an exported constant or variable used by the session orchestrator.
	CodeInvalidState = continuation.CodeInvalidState
	// CodeUserNotFound is an exported constant or variable used by the session orchestrator.
	CodeUserNotFound = continuation.CodeUserNotFound
	// CodeUserExists is an exported constant or variable used by the session orchestrator.
	CodeUserExists = continuation.CodeUserExists
	// CodeTokenExpired is an exported constant or variable used by the session orchestrator.
	CodeTokenExpired = continuation.CodeTokenExpired
	// CodePermissionReauthorize is an exported constant or variable used by the session orchestrator.
	CodePermissionReauthorize = continuation.CodePermissionReauthorize
	// CodeAccountSelectionRequired is an exported constant or variable used by the session orchestrator.
	CodeAccountSelectionRequired = continuation.CodeAccountSelectionRequired
	// CodeUnknown is an exported constant or variable used by the session orchestrator.
	CodeUnknown = continuation.CodeUnknown
)

// ContinuationOutcome classifies what a processed continuation did.
type ContinuationOutcome uint8

const (
	// OutcomeCommitted is an exported constant or variable used by the session orchestrator.
	OutcomeCommitted ContinuationOutcome = iota
	// OutcomeTwoFactorRequired is an exported constant or variable used by the session orchestrator.
	OutcomeTwoFactorRequired
	// OutcomeActionRequired is an exported constant or variable used by the session orchestrator.
	OutcomeActionRequired
	// OutcomeInformational is an exported constant or variable used by the session orchestrator.
	OutcomeInformational
	// OutcomeError is an exported constant or variable used by the session orchestrator.
	OutcomeError
)

// ContinuationResult is returned by [Engine.HandleContinuation]. CleanURL is
// always true: the host must strip the query string on success and failure
// alike so a reload cannot re-run the same callback.
type ContinuationResult struct {
	Code       ContinuationCode
	Outcome    ContinuationOutcome
	AccountID  string
	AccountIDs []string
	Provider   string
	Message    string
	CleanURL   bool
}

// Notifier is the real-time collaborator consumed by the engine. The engine
// only calls it; delivery, reconnect, and backoff live elsewhere.
type Notifier interface {
	Subscribe(accountID string)
	Unsubscribe(accountID string)
	Connected() bool
}

// StateSnapshot is a read-only view of the engine's position, returned by
// [Engine.StateSnapshot].
type StateSnapshot struct {
	Phase            Phase
	HasSession       bool
	SessionValid     bool
	AccountCount     int
	DisabledCount    int
	ChallengeLive    bool
	LockoutRemaining time.Duration
	RetryAttempts    int
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// ValidAccountID reports whether id matches the authority's account id
// format: 24 lowercase hexadecimal characters.
func ValidAccountID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
