// Package goAuthClient provides a client-resident authentication and
// multi-account session orchestrator. It keeps a local view of zero or more
// simultaneously logged-in accounts synchronized with a remote session
// authority, drives local and OAuth login flows to completion, and resumes
// OAuth and email-verification flows across full-page navigation boundaries
// from nothing but the return-URL query string.
//
// The package is the public surface. It exposes [Engine], [Builder], [Config],
// sentinel errors, and value types (Account, LoginResult, ContinuationResult).
// All internal coordination (the account cache, the two-factor challenge
// store, lockout and retry limiters, continuation decoding, audit dispatch)
// lives under internal/ and is never exported.
//
// # Architecture boundaries
//
// The remote session authority is consulted, never re-implemented: every
// write flows through the [transport.Client] collaborator and the local
// caches are rebuilt from the server on each process start. The engine owns
// no on-disk or external storage of any kind.
//
// # What this package must NOT do
//
//   - Persist state beyond the in-memory session and account caches.
//   - Retry transport failures, except the bounded OAuth-permission path.
//   - Hash passwords, sign tokens, or validate token signatures.
package goAuthClient
