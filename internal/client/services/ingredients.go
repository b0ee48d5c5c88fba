package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// IngredientsService manages pantry ingredient definitions.
type IngredientsService struct {
	api *api.Client
}

func NewIngredientsService(client *api.Client) *IngredientsService {
	return &IngredientsService{api: client}
}

// IngredientInput is the payload for creating or updating an ingredient.
type IngredientInput struct {
	Name              string `json:"name"`
	FoodCategory      string `json:"foodCategory,omitempty"`
	DefaultExpireDays int    `json:"defaultExpireDays,omitempty"`
}

func (s *IngredientsService) List(ctx context.Context, p ListParams) (api.Page[models.Ingredient], error) {
	var page api.Page[models.Ingredient]
	if err := s.api.Get(ctx, "/ingredients", p.query(), &page); err != nil {
		return api.Page[models.Ingredient]{}, fmt.Errorf("list ingredients: %w", err)
	}
	return page, nil
}

// Categories returns the known food categories.
func (s *IngredientsService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.api.Get(ctx, "/ingredients/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list ingredient categories: %w", err)
	}
	return categories, nil
}

// Suggest returns up to limit name suggestions for the query. A blank
// query short-circuits to an empty result without a network call.
func (s *IngredientsService) Suggest(ctx context.Context, query, scope string, limit int) ([]models.Ingredient, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if scope == "" {
		scope = "system"
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", fmt.Sprint(limit))
	q.Set("scope", scope)

	// The suggestions endpoint wraps its list in {"ingredients": [...]}.
	var resp struct {
		Ingredients []models.Ingredient `json:"ingredients"`
	}
	if err := s.api.Get(ctx, "/ingredients/suggestions", q, &resp); err != nil {
		return nil, fmt.Errorf("suggest ingredients: %w", err)
	}
	return resp.Ingredients, nil
}

func (s *IngredientsService) Create(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.api.Post(ctx, "/ingredients", in, &ing); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return &ing, nil
}

func (s *IngredientsService) Update(ctx context.Context, id int64, in IngredientInput) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.api.Put(ctx, fmt.Sprintf("/ingredients/%d", id), in, &ing); err != nil {
		return nil, fmt.Errorf("update ingredient %d: %w", id, err)
	}
	return &ing, nil
}

func (s *IngredientsService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/ingredients/%d", id), nil); err != nil {
		return fmt.Errorf("delete ingredient %d: %w", id, err)
	}
	return nil
}
