package models

import "time"

// Ingredient is a pantry ingredient definition.
type Ingredient struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	FoodCategory      string     `json:"foodCategory,omitempty"`
	DefaultExpireDays int        `json:"defaultExpireDays,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}
