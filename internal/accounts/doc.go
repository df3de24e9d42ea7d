// Package accounts is the in-memory account cache: one map from account id
// to a single entry holding the summary projection, the full record, the
// client-side disabled flag, and per-account error state.
//
// # Design
//
// Earlier designs kept data, loading state, and errors in parallel maps and
// drifted out of sync. Here an id maps to exactly one State record, so the
// summary and full views can never visibly disagree: every full-record write
// refreshes the summary projection in the same critical section.
//
// # What this package must NOT do
//
//   - Perform network calls.
//   - Create entries from partial updates; Update on an absent id is a no-op.
//   - Import goAuthClient or any sibling package.
package accounts
