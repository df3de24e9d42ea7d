// Package stores holds the ephemeral single-use state the engine creates
// during multi-step authentication flows. Nothing in here survives the
// process; challenges are destroyed on success, cancel, or expiry.
package stores
