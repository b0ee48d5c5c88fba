package models

import "time"

// Unit is a measurement unit (weight, volume, count, ...).
type Unit struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation,omitempty"`
	Type         string     `json:"type,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// UnitStats is the aggregate returned by GET /units/stats.
type UnitStats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType,omitempty"`
}
