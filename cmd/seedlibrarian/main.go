// The seedlibrarian command provisions the fixed librarian account directly
// against the configured backend, for deployments where hitting the
// /seed-librarian endpoint is not convenient.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"it-library-portal/internal/firebase"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/service"
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

	auth := service.NewAuth(fb, fb, notify.NewLogger())

	profile, err := auth.ProvisionLibrarian(ctx)
	if err != nil {
		if errors.Is(err, service.ErrLibrarianExists) {
			log.Printf("librarian account already exists: %s", profile.RollOrFacultyID)
			return
		}
		log.Fatalf("provisioning librarian: %v", err)
	}

	log.Printf("librarian account created, username %s", profile.RollOrFacultyID)
}
