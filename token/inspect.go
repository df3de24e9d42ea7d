package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAToken is returned when the value is not a decodable JWT. Opaque
// temp tokens are legal; callers treat this as "cannot inspect", never as
// a failure.
var ErrNotAToken = errors.New("value is not a decodable token")

// Info is the subset of claims the client reads from a token.
type Info struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	AccountID string `json:"accountId,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes the token's claims without signature verification.
func Inspect(value string) (Info, error) {
	var c claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(value, &c); err != nil {
		return Info{}, ErrNotAToken
	}

	info := Info{AccountID: c.AccountID}
	if info.AccountID == "" {
		info.AccountID = c.Subject
	}
	if c.IssuedAt != nil {
		info.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		info.ExpiresAt = c.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the token is decodable and carries an exp claim
// in the past. Undecodable or exp-less tokens report false: only the server
// can rule on those.
func Expired(value string, now time.Time) bool {
	info, err := Inspect(value)
	if err != nil || info.ExpiresAt.IsZero() {
		return false
	}
	return now.After(info.ExpiresAt)
}
