// Package transport defines the one-shot request collaborator the engine
// uses to reach the remote session authority, plus a default net/http
// implementation that unwraps the authority's response envelope.
//
// # Design
//
// Calls are single-shot: no retries, no backoff. Timeout enforcement lives
// here at the transport boundary, never in the engine. A non-success
// envelope or non-2xx status is surfaced as an [*APIError] carrying the
// server's error code, message, and HTTP status.
//
// # What this package must NOT do
//
//   - Retry failed requests.
//   - Interpret business-level error codes; classification is the caller's job.
//   - Import goAuthClient or any sibling package.
package transport
