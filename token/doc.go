// Package token inspects authority-issued tokens on the client without
// verifying them. The client never holds signing keys: the server remains
// the authority on token validity, and inspection exists only to detect an
// already-expired temp token locally before spending a network round trip.
//
// # What this package must NOT do
//
//   - Verify signatures or treat an unexpired token as proof of anything.
//   - Import goAuthClient or any sibling package.
package token
