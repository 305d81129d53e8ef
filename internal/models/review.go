package models

import "time"

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of an item.
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ItemID    string    `json:"item_id" db:"item_id"`
	Rating    int       `json:"rating" db:"rating"` // 1..5
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
