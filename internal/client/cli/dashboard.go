package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform-wide resource totals",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		stats, err := app.dashboard.Overview(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(stats)
		}

		fmt.Printf("Users:          %d\n", stats.Users)
		fmt.Printf("Groups:         %d\n", stats.Groups)
		fmt.Printf("Recipes:        %d (%d system)\n", stats.Recipes, stats.SystemRecipes)
		fmt.Printf("Ingredients:    %d\n", stats.Ingredients)
		fmt.Printf("Units:          %d\n", stats.Units.Total)

		types := make([]string, 0, len(stats.Units.ByType))
		for typ := range stats.Units.ByType {
			types = append(types, typ)
		}
		sort.Strings(types)
		for _, typ := range types {
			fmt.Printf("  %-12s  %d\n", typ, stats.Units.ByType[typ])
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
