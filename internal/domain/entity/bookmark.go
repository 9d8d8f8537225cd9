package entity

import "time"

// Bookmark is a saved link owned by exactly one user. Ownership means
// exclusive control: a bookmark is visible, mutable and deletable only
// by the user whose ID it carries.
type Bookmark struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
