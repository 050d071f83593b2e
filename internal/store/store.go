// Package store defines the repository contracts every backend implements.
// The Firestore implementation lives in internal/firebase, the in-memory
// one in internal/memstore.
package store

import (
	"context"
	"errors"
	"io"
	"time"

	"it-library-portal/internal/models"
)

var (
	// ErrNotFound means no record matched the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrIdentifierTaken means a profile with the same roll number or
	// faculty ID is already registered.
	ErrIdentifierTaken = errors.New("identifier already registered")

	// ErrCodeIssued means another ledger entry already holds this book
	// code in the borrowed state.
	ErrCodeIssued = errors.New("book code already issued")

	// ErrYearTaken means a project file already exists for the academic year.
	ErrYearTaken = errors.New("academic year already has a file")
)

// Profiles is the profile/role directory.
type Profiles interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	// GetProfileForLogin looks up a profile by uppercased identifier scoped
	// to a role. It is a privileged lookup: the caller is not authenticated yet.
	GetProfileForLogin(ctx context.Context, identifier string, role models.Role) (*models.Profile, error)

	// FindProfileByIdentifier matches the identifier across all roles; used
	// for the registration duplicate check.
	FindProfileByIdentifier(ctx context.Context, identifier string) (*models.Profile, error)

	// FindProfileByRole returns any profile with the role; used to detect
	// an existing librarian during bootstrap.
	FindProfileByRole(ctx context.Context, role models.Role) (*models.Profile, error)

	CreateProfile(ctx context.Context, p *models.Profile) error
	SetProfileStatus(ctx context.Context, id string, status models.Status) error
	ListPendingProfiles(ctx context.Context) ([]*models.Profile, error)
	ListActiveProfiles(ctx context.Context) ([]*models.Profile, error)
}

// Books is the circulating-book collection. ListBooks returns titles in
// ascending order.
type Books interface {
	GetBook(ctx context.Context, id string) (*models.Book, error)
	CreateBook(ctx context.Context, b *models.Book) error
	UpdateBook(ctx context.Context, id string, b *models.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context) ([]*models.Book, error)
}

// Magazines is the magazine collection, listed by publication date descending.
type Magazines interface {
	GetMagazine(ctx context.Context, id string) (*models.Magazine, error)
	CreateMagazine(ctx context.Context, m *models.Magazine) error
	UpdateMagazine(ctx context.Context, id string, m *models.Magazine) error
	DeleteMagazine(ctx context.Context, id string) error
	ListMagazines(ctx context.Context) ([]*models.Magazine, error)
}

// Journals is the journal collection, listed by publication year descending.
type Journals interface {
	GetJournal(ctx context.Context, id string) (*models.Journal, error)
	CreateJournal(ctx context.Context, j *models.Journal) error
	UpdateJournal(ctx context.Context, id string, j *models.Journal) error
	DeleteJournal(ctx context.Context, id string) error
	ListJournals(ctx context.Context) ([]*models.Journal, error)
}

// Borrows is the append-mostly borrow ledger. CreateBorrow must guarantee
// that at most one entry per book code is in the borrowed state, even when
// a concurrent insert races past the caller's own lookup.
type Borrows interface {
	GetBorrow(ctx context.Context, id string) (*models.Borrow, error)

	// ActiveBorrowByCode returns the borrowed entry holding the code, or
	// ErrNotFound when the code is free.
	ActiveBorrowByCode(ctx context.Context, code string) (*models.Borrow, error)

	// CreateBorrow inserts the entry and reserves its book code; returns
	// ErrCodeIssued when the code is already held.
	CreateBorrow(ctx context.Context, b *models.Borrow) error

	// MarkBorrowReturned flips the entry to returned and releases its code.
	MarkBorrowReturned(ctx context.Context, id string, at time.Time) error

	// ListBorrows returns all entries, newest borrow date first.
	ListBorrows(ctx context.Context) ([]*models.Borrow, error)
	ListBorrowsByUser(ctx context.Context, userID string) ([]*models.Borrow, error)
}

// ProjectFiles indexes the stored CSP project-title documents.
type ProjectFiles interface {
	GetProjectFile(ctx context.Context, id string) (*models.ProjectFile, error)
	GetProjectFileByYear(ctx context.Context, academicYear string) (*models.ProjectFile, error)

	// CreateProjectFile returns ErrYearTaken when the academic year
	// already has a record.
	CreateProjectFile(ctx context.Context, f *models.ProjectFile) error
	DeleteProjectFile(ctx context.Context, id string) error

	// ListProjectFiles returns all records, newest academic year first.
	ListProjectFiles(ctx context.Context) ([]*models.ProjectFile, error)
}

// Blobs is the object-storage bucket holding the project documents.
type Blobs interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	Remove(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Credentials is the authentication provider. Account keys are the derived
// login handles, never the human-facing identifiers.
type Credentials interface {
	// CreateAccount registers email+password and returns the provider UID.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// VerifyPassword checks the credential and returns the provider UID.
	// A wrong password and an unknown account are indistinguishable.
	VerifyPassword(ctx context.Context, email, password string) (string, error)

	// DeleteAccount removes the credential; used to compensate a failed
	// profile insert during registration.
	DeleteAccount(ctx context.Context, uid string) error
}
