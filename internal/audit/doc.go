// Package audit provides asynchronous audit event dispatch for the session
// orchestrator. Events are emitted by the engine and forwarded to a
// caller-supplied sink without ever blocking an authentication flow.
//
// # What this package must NOT do
//
//   - Perform network calls of its own.
//   - Import goAuthClient or any sibling package.
package audit
