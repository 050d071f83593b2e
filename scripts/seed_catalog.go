// Seeds the catalog with sample IT department holdings. Run once against a
// fresh Firestore project: go run ./scripts
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"it-library-portal/internal/firebase"
	"it-library-portal/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	ctx := context.Background()
	fb, err := firebase.Init(ctx)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	defer fb.Close()

	log.Println("seeding sample catalog...")

	books := []models.Book{
		{
			Title:           "Operating System Concepts",
			Author:          "Abraham Silberschatz",
			Publisher:       "Wiley",
			Edition:         "10th",
			TotalCopies:     5,
			AvailableCopies: 5,
		},
		{
			Title:           "Computer Networks",
			Author:          "Andrew S. Tanenbaum",
			Publisher:       "Pearson",
			Edition:         "6th",
			TotalCopies:     4,
			AvailableCopies: 4,
		},
		{
			Title:           "Database System Concepts",
			Author:          "Henry F. Korth",
			Publisher:       "McGraw Hill",
			Edition:         "7th",
			TotalCopies:     3,
			AvailableCopies: 3,
		},
		{
			Title:           "Introduction to Algorithms",
			Author:          "Thomas H. Cormen",
			Publisher:       "MIT Press",
			Edition:         "4th",
			TotalCopies:     6,
			AvailableCopies: 6,
		},
		{
			Title:           "Artificial Intelligence: A Modern Approach",
			Author:          "Stuart Russell",
			Publisher:       "Pearson",
			Edition:         "4th",
			TotalCopies:     2,
			AvailableCopies: 2,
		},
	}
	for i := range books {
		if err := fb.CreateBook(ctx, &books[i]); err != nil {
			log.Fatalf("seeding book %q: %v", books[i].Title, err)
		}
		log.Printf("added book: %s", books[i].Title)
	}

	magazines := []models.Magazine{
		{
			Title:           "IEEE Spectrum",
			Publisher:       "IEEE",
			IssueNumber:     "2026-07",
			PublicationDate: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
			Category:        "Engineering",
		},
		{
			Title:           "Communications Today",
			Publisher:       "ADI Media",
			IssueNumber:     "2026-06",
			PublicationDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			Category:        "Telecom",
		},
	}
	for i := range magazines {
		if err := fb.CreateMagazine(ctx, &magazines[i]); err != nil {
			log.Fatalf("seeding magazine %q: %v", magazines[i].Title, err)
		}
		log.Printf("added magazine: %s", magazines[i].Title)
	}

	journals := []models.Journal{
		{
			Title:           "ACM Computing Surveys",
			Publisher:       "ACM",
			ISSN:            "0360-0300",
			Volume:          "58",
			Issue:           "2",
			PublicationYear: 2026,
			Category:        "Computing",
		},
		{
			Title:           "Journal of Network and Computer Applications",
			Publisher:       "Elsevier",
			ISSN:            "1084-8045",
			Volume:          "230",
			Issue:           "1",
			PublicationYear: 2025,
			Category:        "Networking",
		},
	}
	for i := range journals {
		if err := fb.CreateJournal(ctx, &journals[i]); err != nil {
			log.Fatalf("seeding journal %q: %v", journals[i].Title, err)
		}
		log.Printf("added journal: %s", journals[i].Title)
	}

	log.Println("catalog seeding done")
}
