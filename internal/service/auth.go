package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"it-library-portal/internal/models"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

// Fixed librarian bootstrap identity. The username doubles as the
// librarian's stored identifier; the email is the credential key.
const (
	LibrarianUsername = "ITDEPTLIB@123"
	LibrarianEmail    = "librarian@itlibrary.local"
	LibrarianPassword = "ITLibrarian@123"
	LibrarianName     = "ITLIBRARIAN"

	// HandleDomain completes the derived login handle. The human-facing
	// identifier is never the literal credential key.
	HandleDomain = "@library.local"
)

// Auth implements login, registration, and librarian bootstrap.
type Auth struct {
	profiles    store.Profiles
	credentials store.Credentials
	notifier    notify.Port
}

// NewAuth wires the auth service.
func NewAuth(profiles store.Profiles, credentials store.Credentials, notifier notify.Port) *Auth {
	return &Auth{profiles: profiles, credentials: credentials, notifier: notifier}
}

// LoginHandle derives the credential key from a human identifier:
// lowercase, non-alphanumerics stripped, fixed domain appended.
func LoginHandle(identifier string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(identifier) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String() + HandleDomain
}

// Authenticate resolves the identifier for the role, gates on account
// status, and verifies the password with the credential provider.
func (a *Auth) Authenticate(ctx context.Context, identifier string, role models.Role, password string) (*models.Profile, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if role == models.RoleLibrarian {
		return a.authenticateLibrarian(ctx, identifier, password)
	}

	profile, err := a.profiles.GetProfileForLogin(ctx, strings.ToUpper(identifier), role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	// Status is checked before the password: a pending or rejected
	// account is routed to the status page, not told about credentials.
	switch profile.Status {
	case models.StatusPending:
		return nil, ErrAccountPending
	case models.StatusRejected:
		return nil, ErrAccountRejected
	}

	if _, err := a.credentials.VerifyPassword(ctx, LoginHandle(identifier), password); err != nil {
		log.Printf("password verification failed for %s: %v", LoginHandle(identifier), err)
		return nil, ErrInvalidCredentials
	}

	return profile, nil
}

func (a *Auth) authenticateLibrarian(ctx context.Context, identifier, password string) (*models.Profile, error) {
	if identifier != LibrarianUsername {
		return nil, ErrInvalidCredentials
	}

	if _, err := a.credentials.VerifyPassword(ctx, LibrarianEmail, password); err != nil {
		log.Printf("librarian password verification failed: %v", err)
		return nil, ErrInvalidCredentials
	}

	profile, err := a.profiles.FindProfileByRole(ctx, models.RoleLibrarian)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("looking up librarian profile: %w", err)
	}

	return profile, nil
}

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Role       models.Role
	Name       string
	Identifier string
	Phone      string
	Password   string
}

// Register validates the form, creates the credential, then the profile in
// pending status. A failed profile insert deletes the credential again so
// the two stay consistent.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	if err := validate.Registration(in.Role, in.Name, in.Identifier, in.Phone, in.Password); err != nil {
		return nil, err
	}

	identifier := strings.ToUpper(strings.TrimSpace(in.Identifier))

	existing, err := a.profiles.FindProfileByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking identifier: %w", err)
	}
	if existing != nil {
		return nil, store.ErrIdentifierTaken
	}

	uid, err := a.credentials.CreateAccount(ctx, LoginHandle(in.Identifier), in.Password)
	if err != nil {
		return nil, fmt.Errorf("creating credential: %w", err)
	}

	profile := &models.Profile{
		AuthUID:         uid,
		Name:            strings.TrimSpace(in.Name),
		Role:            in.Role,
		RollOrFacultyID: identifier,
		Phone:           in.Phone,
		Status:          models.StatusPending,
	}

	if err := a.profiles.CreateProfile(ctx, profile); err != nil {
		if delErr := a.credentials.DeleteAccount(ctx, uid); delErr != nil {
			log.Printf("orphaned credential %s after failed profile insert: %v", uid, delErr)
		}
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	log.Printf("new %s registration: %s (%s)", profile.Role, profile.Name, profile.RollOrFacultyID)
	return profile, nil
}

// ProvisionLibrarian creates the fixed librarian credential and profile.
// It refuses to create a second librarian, checked by role, which makes
// both the setup page and the seed endpoint idempotent.
func (a *Auth) ProvisionLibrarian(ctx context.Context) (*models.Profile, error) {
	existing, err := a.profiles.FindProfileByRole(ctx, models.RoleLibrarian)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking for librarian: %w", err)
	}
	if existing != nil {
		return existing, ErrLibrarianExists
	}

	uid, err := a.credentials.CreateAccount(ctx, LibrarianEmail, LibrarianPassword)
	if err != nil {
		return nil, fmt.Errorf("creating librarian credential: %w", err)
	}

	profile := &models.Profile{
		AuthUID:         uid,
		Name:            LibrarianName,
		Role:            models.RoleLibrarian,
		RollOrFacultyID: LibrarianUsername,
		Phone:           "0000000000",
		Status:          models.StatusActive,
	}

	if err := a.profiles.CreateProfile(ctx, profile); err != nil {
		if delErr := a.credentials.DeleteAccount(ctx, uid); delErr != nil {
			log.Printf("orphaned librarian credential %s: %v", uid, delErr)
		}
		return nil, fmt.Errorf("creating librarian profile: %w", err)
	}

	log.Println("librarian account provisioned")
	return profile, nil
}
