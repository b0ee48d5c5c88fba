package models

import "time"

// Group is a household/shopping group administered by the platform.
type Group struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Owner       *User      `json:"owner,omitempty"`
	MemberCount int        `json:"memberCount"`
	Members     []User     `json:"members,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
