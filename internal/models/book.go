package models

import "time"

// Book represents a circulating catalog item
type Book struct {
	ID              string    `json:"id" firestore:"id"`
	Title           string    `json:"title" firestore:"title"`
	Author          string    `json:"author" firestore:"author"`
	Publisher       string    `json:"publisher" firestore:"publisher"`
	Edition         string    `json:"edition" firestore:"edition"`
	TotalCopies     int       `json:"total_copies" firestore:"total_copies"`
	AvailableCopies int       `json:"available_copies" firestore:"available_copies"`
	CoverURL        string    `json:"cover_url" firestore:"cover_url"`
	CreatedAt       time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updated_at"`
}

// IsAvailable checks whether any copy is left on the shelf
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
