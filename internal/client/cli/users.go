package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ezymarket/adminctl/internal/client/services"
)

var (
	listPage   int
	listLimit  int
	listSearch string

	userEmail    string
	userName     string
	userPassword string
	userRole     string
	userPhone    string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		page, err := app.users.List(ctx, services.ListParams{
			Page:   listPage,
			Limit:  listLimit,
			Search: listSearch,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(page)
		}

		t := newTable("ID", "USERNAME", "EMAIL", "ROLE", "VERIFIED")
		for _, u := range page.Items {
			t.row(u.ID, u.UserName, u.Email, dash(u.Role), u.EmailVerified)
		}
		t.flush()
		fmt.Printf("\n%d of %d users\n", len(page.Items), page.Total)
		return nil
	}),
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		user, err := app.users.Get(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}

		t := newTable("ID", "USERNAME", "EMAIL", "ROLE", "PHONE", "VERIFIED")
		t.row(user.ID, user.UserName, user.Email, dash(user.Role), dash(user.Phone), user.EmailVerified)
		t.flush()
		return nil
	}),
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		user, err := app.users.Create(ctx, services.UserInput{
			Email:    userEmail,
			UserName: userName,
			Password: userPassword,
			Role:     userRole,
			Phone:    userPhone,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created user %d (%s)\n", user.ID, user.Email)
		return nil
	}),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		user, err := app.users.Update(ctx, id, services.UserInput{
			Email:    userEmail,
			UserName: userName,
			Password: userPassword,
			Role:     userRole,
			Phone:    userPhone,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated user %d\n", user.ID)
		return nil
	}),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.users.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted user %d\n", id)
		return nil
	}),
}

// parseID converts a positional <id> argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// addListFlags registers the shared pagination flags.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&listPage, "page", 1, "page number")
	cmd.Flags().IntVar(&listLimit, "limit", 20, "items per page")
	cmd.Flags().StringVar(&listSearch, "search", "", "search filter")
}

func addUserInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userEmail, "email", "", "email address")
	cmd.Flags().StringVar(&userName, "username", "", "display name")
	cmd.Flags().StringVar(&userPassword, "password", "", "password")
	cmd.Flags().StringVar(&userRole, "role", "", "role (admin or user)")
	cmd.Flags().StringVar(&userPhone, "phone", "", "phone number")
}

func init() {
	addListFlags(usersListCmd)
	addUserInputFlags(usersCreateCmd)
	addUserInputFlags(usersUpdateCmd)

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
