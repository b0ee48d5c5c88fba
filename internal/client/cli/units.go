package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
	"github.com/ezymarket/adminctl/internal/client/services"
)

var (
	unitName         string
	unitAbbreviation string
	unitType         string
	unitSort         string
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Manage measurement units",
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List units",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		page, err := app.units.List(ctx, services.ListParams{
			Page:   listPage,
			Limit:  listLimit,
			Search: listSearch,
		})
		if err != nil {
			return err
		}
		return printUnitPage(page)
	}),
}

var unitsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search units by name or abbreviation",
	Args:  cobra.MaximumNArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		page, err := app.units.Search(ctx, services.UnitSearchParams{
			Query: query,
			Type:  unitType,
			Page:  listPage,
			Limit: listLimit,
			Sort:  unitSort,
		})
		if err != nil {
			return err
		}
		return printUnitPage(page)
	}),
}

var unitsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a unit",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		unit, err := app.units.Get(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(unit)
		}
		t := newTable("ID", "NAME", "ABBREV", "TYPE")
		t.row(unit.ID, unit.Name, dash(unit.Abbreviation), dash(unit.Type))
		t.flush()
		return nil
	}),
}

var unitsByTypeCmd = &cobra.Command{
	Use:   "by-type <type>",
	Short: "List units of one type (weight, volume, count, ...)",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		units, err := app.units.ByType(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(units)
		}
		t := newTable("ID", "NAME", "ABBREV")
		for _, u := range units {
			t.row(u.ID, u.Name, dash(u.Abbreviation))
		}
		t.flush()
		return nil
	}),
}

var unitsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show unit counts by type",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		stats, err := app.units.Stats(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(stats)
		}

		fmt.Printf("Total units: %d\n", stats.Total)
		types := make([]string, 0, len(stats.ByType))
		for typ := range stats.ByType {
			types = append(types, typ)
		}
		sort.Strings(types)
		for _, typ := range types {
			fmt.Printf("  %-10s %d\n", typ, stats.ByType[typ])
		}
		return nil
	}),
}

var unitsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a unit",
	RunE: runWithApp(func(ctx context.Context, app *App, _ []string) error {
		unit, err := app.units.Create(ctx, services.UnitInput{
			Name:         unitName,
			Abbreviation: unitAbbreviation,
			Type:         unitType,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created unit %d (%s)\n", unit.ID, unit.Name)
		return nil
	}),
}

var unitsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a unit",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		unit, err := app.units.Update(ctx, id, services.UnitInput{
			Name:         unitName,
			Abbreviation: unitAbbreviation,
			Type:         unitType,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated unit %d\n", unit.ID)
		return nil
	}),
}

var unitsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a unit",
	Args:  cobra.ExactArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.units.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted unit %d\n", id)
		return nil
	}),
}

var unitsBatchDeleteCmd = &cobra.Command{
	Use:   "batch-delete <id>...",
	Short: "Delete several units in one request",
	Args:  cobra.MinimumNArgs(1),
	RunE: runWithApp(func(ctx context.Context, app *App, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := app.units.BatchDelete(ctx, ids); err != nil {
			return err
		}

		printed := make([]string, len(ids))
		for i, id := range ids {
			printed[i] = strconv.FormatInt(id, 10)
		}
		fmt.Printf("Deleted units %s\n", strings.Join(printed, ", "))
		return nil
	}),
}

func printUnitPage(page api.Page[models.Unit]) error {
	if jsonOutput {
		return printJSON(page)
	}
	t := newTable("ID", "NAME", "ABBREV", "TYPE")
	for _, u := range page.Items {
		t.row(u.ID, u.Name, dash(u.Abbreviation), dash(u.Type))
	}
	t.flush()
	fmt.Printf("\n%d of %d units\n", len(page.Items), page.Total)
	return nil
}

func addUnitInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&unitName, "name", "", "unit name")
	cmd.Flags().StringVar(&unitAbbreviation, "abbrev", "", "abbreviation")
	cmd.Flags().StringVar(&unitType, "type", "", "unit type (weight, volume, count, ...)")
}

func init() {
	addListFlags(unitsListCmd)
	addListFlags(unitsSearchCmd)
	unitsSearchCmd.Flags().StringVar(&unitType, "type", "", "filter by type")
	unitsSearchCmd.Flags().StringVar(&unitSort, "sort", "", "sort field")
	addUnitInputFlags(unitsCreateCmd)
	addUnitInputFlags(unitsUpdateCmd)

	unitsCmd.AddCommand(unitsListCmd, unitsSearchCmd, unitsGetCmd, unitsByTypeCmd,
		unitsStatsCmd, unitsCreateCmd, unitsUpdateCmd, unitsDeleteCmd, unitsBatchDeleteCmd)
	rootCmd.AddCommand(unitsCmd)
}
