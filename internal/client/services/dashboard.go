package services

import (
	"context"
	"fmt"

	"github.com/ezymarket/adminctl/internal/client/models"
)

// DashboardService aggregates the read-only analytics screen: resource
// totals pulled from the list endpoints' pagination plus the unit stats.
type DashboardService struct {
	users       *UsersService
	groups      *GroupsService
	recipes     *RecipesService
	ingredients *IngredientsService
	units       *UnitsService
}

func NewDashboardService(
	users *UsersService,
	groups *GroupsService,
	recipes *RecipesService,
	ingredients *IngredientsService,
	units *UnitsService,
) *DashboardService {
	return &DashboardService{
		users:       users,
		groups:      groups,
		recipes:     recipes,
		ingredients: ingredients,
		units:       units,
	}
}

// Stats is the dashboard summary.
type Stats struct {
	Users         int
	Groups        int
	Recipes       int
	SystemRecipes int
	Ingredients   int
	Units         models.UnitStats
}

// Overview fetches every total. One page of one item per resource is
// enough: only the pagination totals are read.
func (s *DashboardService) Overview(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	users, err := s.users.List(ctx, ListParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Users = users.Total

	groups, err := s.groups.List(ctx, ListParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Groups = groups.Total

	recipes, err := s.recipes.Search(ctx, RecipeSearchParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Recipes = recipes.Total

	system, err := s.recipes.SystemRecipes(ctx, RecipeSearchParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.SystemRecipes = system.Total

	ingredients, err := s.ingredients.List(ctx, ListParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Ingredients = ingredients.Total

	unitStats, err := s.units.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Units = *unitStats

	return stats, nil
}
