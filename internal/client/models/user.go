// Package models defines the EzyMarket resource types exchanged with the
// backend. Fields mirror the JSON the API emits; zero values mean the
// backend omitted the field.
package models

import "time"

// User is the denormalized profile snapshot returned by the backend.
// The cached copy in the session store is for display only and is not
// authoritative.
type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	UserName      string     `json:"userName"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	Avatar        string     `json:"avatar,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}
