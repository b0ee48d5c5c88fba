package models

import "time"

// Recipe as stored by the platform. System recipes are owned by admins,
// the rest belong to individual users.
type Recipe struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty"`
	PrepTime    int                `json:"prepTime,omitempty"`
	CookTime    int                `json:"cookTime,omitempty"`
	Servings    int                `json:"servings,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
	Directions  []string           `json:"directions,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
// Quantity is a pointer so "unspecified" survives a round trip.
type RecipeIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Note     string   `json:"note,omitempty"`
}
