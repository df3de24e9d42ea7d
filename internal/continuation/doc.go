// Package continuation decodes the return-URL query string that carries an
// authentication flow across a full-page navigation boundary (OAuth
// redirects, email verification links).
//
// # Design
//
// The query string is the only state that survives the round trip, so
// decoding is a pure function from raw query to event: no package state, no
// network, no clock. An absent code parameter means "nothing to process" and
// is a no-op, not an error.
package continuation
