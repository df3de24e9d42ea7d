// Package limiters implements the client-side throttles layered in front of
// the server's own rate limiting: the two-factor lockout countdown and the
// bounded OAuth-permission retry cooldown.
//
// These limiters never make network calls; a rejected attempt is rejected
// before the transport is touched.
package limiters
