package continuation

import (
	"net/url"
	"strings"
)

// Code discriminates the outcome carried by an inbound continuation.
type Code string

const (
	CodeOAuthSigninSuccess        Code = "OAUTH_SIGNIN_SUCCESS"
	CodeOAuthSignupSuccess        Code = "OAUTH_SIGNUP_SUCCESS"
	CodeOAuthPermissionSuccess    Code = "OAUTH_PERMISSION_SUCCESS"
	CodeLocalSigninSuccess        Code = "LOCAL_SIGNIN_SUCCESS"
	CodeLocalSignupSuccess        Code = "LOCAL_SIGNUP_SUCCESS"
	CodeLocalTwoFactorRequired    Code = "LOCAL_2FA_REQUIRED"
	CodeLocalEmailVerified        Code = "LOCAL_EMAIL_VERIFIED"
	CodeLocalPasswordResetSuccess Code = "LOCAL_PASSWORD_RESET_SUCCESS"
	CodeLogoutSuccess             Code = "LOGOUT_SUCCESS"
	CodeLogoutDisableSuccess      Code = "LOGOUT_DISABLE_SUCCESS"
	CodeLogoutAllSuccess          Code = "LOGOUT_ALL_SUCCESS"
	CodeOAuthError                Code = "OAUTH_ERROR"
	CodeLocalAuthError            Code = "LOCAL_AUTH_ERROR"
	CodePermissionError           Code = "PERMISSION_ERROR"
	CodeInvalidState              Code = "INVALID_STATE"
	CodeUserNotFound              Code = "USER_NOT_FOUND"
	CodeUserExists                Code = "USER_EXISTS"
	CodeTokenExpired              Code = "TOKEN_EXPIRED"
	CodePermissionReauthorize     Code = "PERMISSION_REAUTHORIZE"
	CodeAccountSelectionRequired  Code = "ACCOUNT_SELECTION_REQUIRED"
	CodeUnknown                   Code = "UNKNOWN"
)

var knownCodes = map[Code]struct{}{
	CodeOAuthSigninSuccess:        {},
	CodeOAuthSignupSuccess:        {},
	CodeOAuthPermissionSuccess:    {},
	CodeLocalSigninSuccess:        {},
	CodeLocalSignupSuccess:        {},
	CodeLocalTwoFactorRequired:    {},
	CodeLocalEmailVerified:        {},
	CodeLocalPasswordResetSuccess: {},
	CodeLogoutSuccess:             {},
	CodeLogoutDisableSuccess:      {},
	CodeLogoutAllSuccess:          {},
	CodeOAuthError:                {},
	CodeLocalAuthError:            {},
	CodePermissionError:           {},
	CodeInvalidState:              {},
	CodeUserNotFound:              {},
	CodeUserExists:                {},
	CodeTokenExpired:              {},
	CodePermissionReauthorize:     {},
	CodeAccountSelectionRequired:  {},
}

// Event is the decoded continuation. Field presence depends on the code;
// absent parameters decode to zero values.
type Event struct {
	Code       Code
	AccountID  string
	AccountIDs []string
	TempToken  string
	Provider   string
	Name       string
	Email      string
	Message    string

	// ClearClientState mirrors the clearClientAccountState query flag:
	// only the literal "true" counts.
	ClearClientState bool

	// Raw keeps every decoded parameter for branches that need more than
	// the named fields above.
	Raw url.Values
}

// Parse decodes rawQuery into an Event. ok is false when no code parameter
// is present: there is no callback to process. Codes outside the known
// enumeration map to CodeUnknown so the dispatcher's fallback branch runs.
func Parse(rawQuery string) (Event, bool) {
	trimmed := strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(trimmed)
	if err != nil {
		if !strings.Contains(trimmed, "code=") {
			return Event{}, false
		}
		// A callback we cannot decode still carries intent; surface it
		// through the dispatcher's unknown branch so the URL gets cleaned.
		return Event{Code: CodeUnknown, Raw: url.Values{}}, true
	}

	raw := values.Get("code")
	if raw == "" {
		return Event{}, false
	}

	code := Code(raw)
	if _, known := knownCodes[code]; !known {
		code = CodeUnknown
	}

	event := Event{
		Code:             code,
		AccountID:        values.Get("accountId"),
		TempToken:        values.Get("tempToken"),
		Provider:         values.Get("provider"),
		Name:             values.Get("name"),
		Email:            values.Get("email"),
		Message:          values.Get("message"),
		ClearClientState: values.Get("clearClientAccountState") == "true",
		Raw:              values,
	}
	if joined := values.Get("accountIds"); joined != "" {
		for _, id := range strings.Split(joined, ",") {
			if id = strings.TrimSpace(id); id != "" {
				event.AccountIDs = append(event.AccountIDs, id)
			}
		}
	}
	return event, true
}
