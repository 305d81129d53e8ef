package models

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ReviewID  string    `json:"review_id" db:"review_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
