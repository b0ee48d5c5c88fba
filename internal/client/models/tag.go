package models

import "time"

// Tag is a recipe tag. System tags have no creator; personal tags carry
// the creating user's id.
type Tag struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatorID *int64     `json:"creatorId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// IsSystem reports whether the tag is a platform-wide (admin-owned) tag.
func (t Tag) IsSystem() bool {
	return t.CreatorID == nil
}
