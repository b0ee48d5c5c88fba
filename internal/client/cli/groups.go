package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezymarket/adminctl/internal/client/services"
)

var (
	groupName        string
	groupDescription string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage household groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		page, err := app.groups.List(ctx, services.ListParams{
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

		t := newTable("ID", "NAME", "OWNER", "MEMBERS")
		for _, g := range page.Items {
			owner := "-"
			if g.Owner != nil {
				owner = g.Owner.UserName
			}
			t.row(g.ID, g.Name, owner, g.MemberCount)
		}
		t.flush()
		fmt.Printf("\n%d of %d groups\n", len(page.Items), page.Total)
		return nil
	}),
}

var groupsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a group and its members",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		group, err := app.groups.Get(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(group)
		}

		fmt.Printf("Group %d: %s\n", group.ID, group.Name)
		if group.Description != "" {
			fmt.Printf("  %s\n", group.Description)
		}
		if len(group.Members) > 0 {
			t := newTable("ID", "USERNAME", "EMAIL")
			for _, m := range group.Members {
				t.row(m.ID, m.UserName, m.Email)
			}
			t.flush()
		}
		return nil
	}),
}

var groupsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a group",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		group, err := app.groups.Update(ctx, id, services.GroupInput{
			Name:        groupName,
			Description: groupDescription,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated group %d\n", group.ID)
		return nil
	}),
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.groups.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted group %d\n", id)
		return nil
	}),
}

var groupsAddMemberCmd = &cobra.Command{
	Use:   "add-member <group-id> <user-id>",
	Short: "Add a user to a group",
	Args:  cobra.ExactArgs(2),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		groupID, err := parseID(args[0])
		if err != nil {
			return err
		}
		userID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := app.groups.AddMember(ctx, groupID, userID); err != nil {
			return err
		}
		fmt.Printf("Added user %d to group %d\n", userID, groupID)
		return nil
	}),
}

var groupsRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <group-id> <user-id>",
	Short: "Remove a user from a group",
	Args:  cobra.ExactArgs(2),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		groupID, err := parseID(args[0])
		if err != nil {
			return err
		}
		userID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := app.groups.RemoveMember(ctx, groupID, userID); err != nil {
			return err
		}
		fmt.Printf("Removed user %d from group %d\n", userID, groupID)
		return nil
	}),
}

func init() {
	addListFlags(groupsListCmd)
	groupsUpdateCmd.Flags().StringVar(&groupName, "name", "", "group name")
	groupsUpdateCmd.Flags().StringVar(&groupDescription, "description", "", "group description")

	groupsCmd.AddCommand(groupsListCmd, groupsGetCmd, groupsUpdateCmd, groupsDeleteCmd,
		groupsAddMemberCmd, groupsRemoveMemberCmd)
	rootCmd.AddCommand(groupsCmd)
}
