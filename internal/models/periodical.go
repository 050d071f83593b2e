package models

import "time"

// Magazine is a reference-only catalog item; magazines do not circulate.
type Magazine struct {
	ID              string    `json:"id" firestore:"id"`
	Title           string    `json:"title" firestore:"title"`
	Publisher       string    `json:"publisher" firestore:"publisher"`
	IssueNumber     string    `json:"issue_number" firestore:"issue_number"`
	PublicationDate time.Time `json:"publication_date" firestore:"publication_date"`
	Category        string    `json:"category" firestore:"category"`
	CoverURL        string    `json:"cover_url" firestore:"cover_url"`
	CreatedAt       time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updated_at"`
}

// Journal is a reference-only catalog item; journals do not circulate.
type Journal struct {
	ID              string    `json:"id" firestore:"id"`
	Title           string    `json:"title" firestore:"title"`
	Publisher       string    `json:"publisher" firestore:"publisher"`
	ISSN            string    `json:"issn" firestore:"issn"`
	Volume          string    `json:"volume" firestore:"volume"`
	Issue           string    `json:"issue" firestore:"issue"`
	PublicationYear int       `json:"publication_year" firestore:"publication_year"`
	Category        string    `json:"category" firestore:"category"`
	CoverURL        string    `json:"cover_url" firestore:"cover_url"`
	CreatedAt       time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updated_at"`
}
