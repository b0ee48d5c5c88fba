package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as a platform admin",
	Long: `Sign in to the EzyMarket API with admin credentials.

The email can be passed with --email; the password is read from the
terminal without echo unless --password is given (useful for scripting,
but it leaks into shell history).`,
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		email := loginEmail
		if email == "" {
			var err error
			email, err = getSimpleText(bufio.NewReader(os.Stdin), "Email", os.Stderr)
			if err != nil {
				return err
			}
		}

		password := loginPassword
		if password == "" {
			var err error
			password, err = getPassword(os.Stderr)
			if err != nil {
				return err
			}
		}

		user, err := app.auth.Login(ctx, email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", user.UserName, user.Email)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		if err := app.auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		user, err := app.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}

		t := newTable("ID", "USERNAME", "EMAIL", "ROLE", "VERIFIED")
		t.row(user.ID, user.UserName, user.Email, dash(user.Role), user.EmailVerified)
		t.flush()
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local session state without contacting the server",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		snap := app.session.Snapshot()
		if !snap.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Println("Logged in.")
		if snap.User != nil {
			fmt.Printf("  User:    %s (%s)\n", snap.User.UserName, snap.User.Email)
		}
		if exp, ok := tokenExpiry(snap.AccessToken); ok {
			state := "valid"
			if time.Now().After(exp) {
				state = "expired, will refresh on next request"
			}
			fmt.Printf("  Token:   %s (%s)\n", exp.Format(time.RFC3339), state)
		}
		fmt.Printf("  Refresh: %v\n", snap.RefreshToken != "")
		return nil
	}),
}

// tokenExpiry extracts the exp claim without verifying the signature.
// The server is the authority on validity; this is display only.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, statusCmd)
}
