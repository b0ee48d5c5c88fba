package api

import "context"

// Notices receives the user-facing side effects the client produces.
// Exactly one notice is emitted per condition; the client never retries
// after emitting one.
type Notices interface {
	// SessionExpired fires when a 401 is unrecoverable. The session has
	// already been cleared; the UI should return to its login surface.
	SessionExpired(ctx context.Context)

	// PermissionDenied fires on a 403 response.
	PermissionDenied(ctx context.Context)

	// ServerError fires on a 5xx response with the status received.
	ServerError(ctx context.Context, status int)
}

// NopNotices discards every notice.
type NopNotices struct{}

func (NopNotices) SessionExpired(context.Context)   {}
func (NopNotices) PermissionDenied(context.Context) {}
func (NopNotices) ServerError(context.Context, int) {}
