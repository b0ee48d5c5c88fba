// Package api is the authenticated HTTP client for the EzyMarket backend.
//
// # Overview
//
// The package provides:
//  1. Verb helpers (Get/Post/Put/Patch/Delete) over JSON bodies, with the
//     current access token attached as a bearer credential at send time.
//  2. The transparent refresh protocol: a 401 response triggers one token
//     refresh; concurrent 401s collapse into a single refresh call
//     (singleflight) and every waiting request resends with the token that
//     call produced. A request is retried at most once.
//  3. An error taxonomy exposed as sentinel errors (ErrUnauthenticated,
//     ErrForbidden, ErrServer) plus APIError for other 4xx responses.
//  4. Envelope normalization for the backend's inconsistent list shapes
//     (see Page).
//
// # Error Handling
//
// Match conditions with errors.Is. 401 is recovered locally when a refresh
// token exists; an unrecoverable 401 clears the session, evicts durable
// storage and emits a SessionExpired notice. 403 and 5xx emit a notice and
// fail without retry. Transport failures propagate to the caller, which
// owns any retry policy.
//
// # Concurrency
//
// The Client is safe for concurrent use. At most one token refresh is in
// flight at any time; a refresh always runs to completion once started.
package api
