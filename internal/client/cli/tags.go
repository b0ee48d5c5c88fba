package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezymarket/adminctl/internal/client/services"
)

var tagName string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage recipe tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		tags, err := app.tags.List(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(tags)
		}

		t := newTable("ID", "NAME", "SCOPE")
		for _, tag := range tags {
			scope := "personal"
			if tag.IsSystem() {
				scope = "system"
			}
			t.row(tag.ID, tag.Name, scope)
		}
		t.flush()
		return nil
	}),
}

var tagsSuggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Autocomplete tag names",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		tags, err := app.tags.Suggest(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(tags)
		}
		for _, tag := range tags {
			fmt.Println(tag.Name)
		}
		return nil
	}),
}

var tagsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a system tag",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		tag, err := app.tags.Create(ctx, services.TagInput{Name: tagName})
		if err != nil {
			return err
		}
		fmt.Printf("Created tag %d (%s)\n", tag.ID, tag.Name)
		return nil
	}),
}

var tagsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		tag, err := app.tags.Update(ctx, id, services.TagInput{Name: tagName})
		if err != nil {
			return err
		}
		fmt.Printf("Updated tag %d\n", tag.ID)
		return nil
	}),
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.tags.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted tag %d\n", id)
		return nil
	}),
}

func init() {
	tagsCreateCmd.Flags().StringVar(&tagName, "name", "", "tag name")
	tagsUpdateCmd.Flags().StringVar(&tagName, "name", "", "tag name")

	tagsCmd.AddCommand(tagsListCmd, tagsSuggestCmd, tagsCreateCmd, tagsUpdateCmd, tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}
