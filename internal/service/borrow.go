package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"it-library-portal/internal/models"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

// dueDateFrom computes the return deadline: six calendar months from the
// borrow date, with Go's AddDate overflow rules for short months.
func dueDateFrom(borrowDate time.Time) time.Time {
	return borrowDate.AddDate(0, 6, 0)
}

// Ledger runs the borrow/return workflow over the append-mostly ledger.
// Book availability counters are librarian-maintained catalog data and are
// deliberately not touched here.
type Ledger struct {
	borrows  store.Borrows
	books    store.Books
	profiles store.Profiles
	notifier notify.Port

	// now is swapped in tests to pin overdue computation.
	now func() time.Time
}

// NewLedger wires the ledger service.
func NewLedger(borrows store.Borrows, books store.Books, profiles store.Profiles, notifier notify.Port) *Ledger {
	return &Ledger{
		borrows:  borrows,
		books:    books,
		profiles: profiles,
		notifier: notifier,
		now:      time.Now,
	}
}

// Issue checks a physical copy out to a member. The book code pre-check
// gives a clean conflict error; the store's own reservation backstops the
// race where two issues pass the pre-check together.
func (l *Ledger) Issue(ctx context.Context, bookID, userID, bookCode string) (*models.Borrow, error) {
	bookCode = strings.TrimSpace(bookCode)
	if bookCode == "" {
		return nil, validate.FieldErrors{"book_code": "Book code is required"}
	}

	book, err := l.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	profile, err := l.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := l.borrows.ActiveBorrowByCode(ctx, bookCode); err == nil {
		return nil, ErrCodeAlreadyIssued
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking book code: %w", err)
	}

	borrowDate := l.now()
	borrow := &models.Borrow{
		BookID:     book.ID,
		UserID:     profile.ID,
		BookCode:   bookCode,
		Status:     models.BorrowStatusBorrowed,
		BorrowDate: borrowDate,
		DueDate:    dueDateFrom(borrowDate),
	}

	if err := l.borrows.CreateBorrow(ctx, borrow); err != nil {
		if errors.Is(err, store.ErrCodeIssued) {
			return nil, ErrCodeAlreadyIssued
		}
		return nil, fmt.Errorf("creating borrow: %w", err)
	}

	message := fmt.Sprintf("You have borrowed %q. Due date: %s. Please return the book before the due date.",
		book.Title, borrow.DueDate.Format("02 Jan 2006"))
	if err := l.notifier.Send(ctx, profile.Phone, message); err != nil {
		log.Printf("SMS notification failed for %s: %v", profile.Phone, err)
	}

	return borrow, nil
}

// Return closes a ledger entry and frees its book code. Returning an entry
// that is not in the borrowed state is an error, not a no-op: a repeated
// return usually means the librarian scanned the wrong row.
func (l *Ledger) Return(ctx context.Context, borrowID string) (*models.Borrow, error) {
	borrow, err := l.borrows.GetBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if borrow.Status != models.BorrowStatusBorrowed {
		return nil, ErrAlreadyReturned
	}

	returnedAt := l.now()
	if err := l.borrows.MarkBorrowReturned(ctx, borrowID, returnedAt); err != nil {
		return nil, fmt.Errorf("marking returned: %w", err)
	}
	borrow.Status = models.BorrowStatusReturned
	borrow.ReturnedAt = &returnedAt

	profile, err := l.profiles.GetProfile(ctx, borrow.UserID)
	if err != nil {
		log.Printf("return recorded but profile %s lookup failed: %v", borrow.UserID, err)
		return borrow, nil
	}

	title := "your book"
	if book, err := l.books.GetBook(ctx, borrow.BookID); err == nil {
		title = book.Title
	}

	message := fmt.Sprintf("Your book %q has been successfully returned. Thank you for using the library!", title)
	if err := l.notifier.Send(ctx, profile.Phone, message); err != nil {
		log.Printf("SMS notification failed for %s: %v", profile.Phone, err)
	}

	return borrow, nil
}

// details joins ledger entries with their books and profiles. Both side
// collections are read once and resolved from maps; a deleted book or
// profile leaves a nil join, never an error.
func (l *Ledger) details(ctx context.Context, borrows []*models.Borrow) ([]*models.BorrowDetails, error) {
	books, err := l.books.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	booksByID := make(map[string]*models.Book, len(books))
	for _, b := range books {
		booksByID[b.ID] = b
	}

	profiles, err := l.profiles.ListActiveProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	profilesByID := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	now := l.now()
	out := make([]*models.BorrowDetails, 0, len(borrows))
	for _, b := range borrows {
		out = append(out, &models.BorrowDetails{
			Borrow:  *b,
			Book:    booksByID[b.BookID],
			Profile: profilesByID[b.UserID],
			Overdue: b.IsOverdueAt(now),
		})
	}
	return out, nil
}

// ListDetails returns the whole ledger joined with books and profiles,
// newest first.
func (l *Ledger) ListDetails(ctx context.Context) ([]*models.BorrowDetails, error) {
	borrows, err := l.borrows.ListBorrows(ctx)
	if err != nil {
		return nil, err
	}
	return l.details(ctx, borrows)
}

// ListByUser returns one member's joined ledger entries, newest first.
func (l *Ledger) ListByUser(ctx context.Context, userID string) ([]*models.BorrowDetails, error) {
	borrows, err := l.borrows.ListBorrowsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.details(ctx, borrows)
}

// Counts summarizes the ledger for a dashboard.
type Counts struct {
	Active  int `json:"active"`
	Overdue int `json:"overdue"`
}

// CountAll tallies active and overdue entries across the whole ledger.
func (l *Ledger) CountAll(ctx context.Context) (Counts, error) {
	borrows, err := l.borrows.ListBorrows(ctx)
	if err != nil {
		return Counts{}, err
	}
	return l.count(borrows), nil
}

// CountByUser tallies one member's active and overdue entries.
func (l *Ledger) CountByUser(ctx context.Context, userID string) (Counts, error) {
	borrows, err := l.borrows.ListBorrowsByUser(ctx, userID)
	if err != nil {
		return Counts{}, err
	}
	return l.count(borrows), nil
}

func (l *Ledger) count(borrows []*models.Borrow) Counts {
	now := l.now()
	var c Counts
	for _, b := range borrows {
		if b.Status == models.BorrowStatusBorrowed {
			c.Active++
			if b.IsOverdueAt(now) {
				c.Overdue++
			}
		}
	}
	return c
}
