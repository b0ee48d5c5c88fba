package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// RecipesService manages recipes. Listing goes through the search
// endpoints; system recipes (admin-owned) have their own listing.
type RecipesService struct {
	api *api.Client
}

func NewRecipesService(client *api.Client) *RecipesService {
	return &RecipesService{api: client}
}

// RecipeSearchParams parameterize the recipe search endpoints.
type RecipeSearchParams struct {
	Query string
	TagID int64
	Page  int
	Limit int
}

func (p RecipeSearchParams) query() url.Values {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.TagID > 0 {
		q.Set("tagId", strconv.FormatInt(p.TagID, 10))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// RecipeInput is the payload for creating or updating a recipe.
type RecipeInput struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	ImageURL    string                    `json:"imageUrl,omitempty"`
	PrepTime    int                       `json:"prepTime,omitempty"`
	CookTime    int                       `json:"cookTime,omitempty"`
	Servings    int                       `json:"servings,omitempty"`
	Ingredients []models.RecipeIngredient `json:"ingredients,omitempty"`
	Directions  []string                  `json:"directions,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
}

// sanitizeTags trims, drops empties and deduplicates while keeping the
// first occurrence's position.
func sanitizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Search lists recipes across the platform (system + user).
func (s *RecipesService) Search(ctx context.Context, p RecipeSearchParams) (api.Page[models.Recipe], error) {
	var page api.Page[models.Recipe]
	if err := s.api.Get(ctx, "/recipes/search", p.query(), &page); err != nil {
		return api.Page[models.Recipe]{}, fmt.Errorf("search recipes: %w", err)
	}
	return page, nil
}

// SystemRecipes lists only the admin-owned recipes.
func (s *RecipesService) SystemRecipes(ctx context.Context, p RecipeSearchParams) (api.Page[models.Recipe], error) {
	var page api.Page[models.Recipe]
	if err := s.api.Get(ctx, "/recipes/system-recipes", p.query(), &page); err != nil {
		return api.Page[models.Recipe]{}, fmt.Errorf("list system recipes: %w", err)
	}
	return page, nil
}

func (s *RecipesService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.api.Get(ctx, fmt.Sprintf("/recipes/%d", id), nil, &recipe); err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (s *RecipesService) Create(ctx context.Context, in RecipeInput) (*models.Recipe, error) {
	in.Tags = sanitizeTags(in.Tags)
	var recipe models.Recipe
	if err := s.api.Post(ctx, "/recipes", in, &recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipesService) Update(ctx context.Context, id int64, in RecipeInput) (*models.Recipe, error) {
	in.Tags = sanitizeTags(in.Tags)
	var recipe models.Recipe
	if err := s.api.Put(ctx, fmt.Sprintf("/recipes/%d", id), in, &recipe); err != nil {
		return nil, fmt.Errorf("update recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (s *RecipesService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/recipes/%d", id), nil); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}
