package models

// Item is a catalog entry that reviews are written against.
type Item struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
