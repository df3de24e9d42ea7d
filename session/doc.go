// Package session holds the process-wide session snapshot: which accounts
// the remote authority considers logged in on this client, and which of them
// is current.
//
// # Design
//
// There is exactly one snapshot per process. Writers replace it wholesale
// under [Store.Replace]; the snapshot is never patched field-by-field, so
// concurrent refreshes serialize as last-write-wins without partial states
// ever becoming observable.
//
// # What this package must NOT do
//
//   - Perform network calls; reconciliation with the authority is the
//     engine's job.
//   - Import goAuthClient or any sibling package.
package session
