package cli

import (
	"context"
	"fmt"
	"io"
)

// consoleNotices prints session-level events to the terminal so the user
// knows why a command is about to fail.
type consoleNotices struct {
	w io.Writer
}

func newConsoleNotices(w io.Writer) *consoleNotices {
	return &consoleNotices{w: w}
}

func (n *consoleNotices) SessionExpired(context.Context) {
	fmt.Fprintln(n.w, "Session expired. Run 'adminctl login' to sign in again.")
}

func (n *consoleNotices) PermissionDenied(context.Context) {
	fmt.Fprintln(n.w, "Permission denied: this operation requires admin rights.")
}

func (n *consoleNotices) ServerError(_ context.Context, status int) {
	fmt.Fprintf(n.w, "The server reported an error (HTTP %d). Try again later.\n", status)
}
