package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ezymarket/adminctl/internal/client/services"
)

var (
	ingredientName     string
	ingredientCategory string
	ingredientExpire   int

	suggestScope string
	suggestLimit int
)

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Manage the system ingredient catalog",
}

var ingredientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingredients",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		page, err := app.ingredients.List(ctx, services.ListParams{
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

		t := newTable("ID", "NAME", "CATEGORY", "EXPIRE DAYS")
		for _, ing := range page.Items {
			expire := "-"
			if ing.DefaultExpireDays > 0 {
				expire = strconv.Itoa(ing.DefaultExpireDays)
			}
			t.row(ing.ID, ing.Name, dash(ing.FoodCategory), expire)
		}
		t.flush()
		fmt.Printf("\n%d of %d ingredients\n", len(page.Items), page.Total)
		return nil
	}),
}

var ingredientsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List food categories",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		categories, err := app.ingredients.Categories(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(categories)
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	}),
}

var ingredientsSuggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Autocomplete ingredient names",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		matches, err := app.ingredients.Suggest(ctx, args[0], suggestScope, suggestLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(matches)
		}
		for _, m := range matches {
			fmt.Printf("%s\t%s\n", m.Name, dash(m.FoodCategory))
		}
		return nil
	}),
}

var ingredientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an ingredient",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		ing, err := app.ingredients.Create(ctx, services.IngredientInput{
			Name:              ingredientName,
			FoodCategory:      ingredientCategory,
			DefaultExpireDays: ingredientExpire,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created ingredient %d (%s)\n", ing.ID, ing.Name)
		return nil
	}),
}

var ingredientsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ing, err := app.ingredients.Update(ctx, id, services.IngredientInput{
			Name:              ingredientName,
			FoodCategory:      ingredientCategory,
			DefaultExpireDays: ingredientExpire,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated ingredient %d\n", ing.ID)
		return nil
	}),
}

var ingredientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.ingredients.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted ingredient %d\n", id)
		return nil
	}),
}

func addIngredientInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ingredientName, "name", "", "ingredient name")
	cmd.Flags().StringVar(&ingredientCategory, "category", "", "food category")
	cmd.Flags().IntVar(&ingredientExpire, "expire-days", 0, "default shelf life in days")
}

func init() {
	addListFlags(ingredientsListCmd)
	ingredientsSuggestCmd.Flags().StringVar(&suggestScope, "scope", "", "suggestion scope (default system)")
	ingredientsSuggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "max suggestions (default 10)")
	addIngredientInputFlags(ingredientsCreateCmd)
	addIngredientInputFlags(ingredientsUpdateCmd)

	ingredientsCmd.AddCommand(ingredientsListCmd, ingredientsCategoriesCmd, ingredientsSuggestCmd,
		ingredientsCreateCmd, ingredientsUpdateCmd, ingredientsDeleteCmd)
	rootCmd.AddCommand(ingredientsCmd)
}
