package service

import (
	"context"
	"strings"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

// Catalog fronts the four catalog collections. Searching is an
// OR-combination of case-insensitive substring matches over a fixed field
// set per collection, filtered app-side over the store's sorted listing.
type Catalog struct {
	books     store.Books
	magazines store.Magazines
	journals  store.Journals
}

// NewCatalog wires the catalog service.
func NewCatalog(books store.Books, magazines store.Magazines, journals store.Journals) *Catalog {
	return &Catalog{books: books, magazines: magazines, journals: journals}
}

func matchesAny(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func validateBookCopies(b *models.Book) error {
	errs := make(validate.FieldErrors)
	if strings.TrimSpace(b.Title) == "" {
		errs["title"] = "Title is required"
	}
	if b.TotalCopies < 0 {
		errs["total_copies"] = "Total copies must not be negative"
	}
	if b.AvailableCopies < 0 {
		errs["available_copies"] = "Available copies must not be negative"
	}
	if b.AvailableCopies > b.TotalCopies {
		errs["available_copies"] = "Available copies cannot exceed total copies"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SearchBooks filters on title, author, and publisher. An empty query
// returns the full list, ordered by title.
func (c *Catalog) SearchBooks(ctx context.Context, query string) ([]*models.Book, error) {
	all, err := c.books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	var out []*models.Book
	for _, b := range all {
		if matchesAny(query, b.Title, b.Author, b.Publisher) {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetBook fetches one book.
func (c *Catalog) GetBook(ctx context.Context, id string) (*models.Book, error) {
	return c.books.GetBook(ctx, id)
}

// CreateBook validates copy counts and inserts the book.
func (c *Catalog) CreateBook(ctx context.Context, b *models.Book) error {
	if err := validateBookCopies(b); err != nil {
		return err
	}
	return c.books.CreateBook(ctx, b)
}

// UpdateBook validates copy counts and overwrites the book.
func (c *Catalog) UpdateBook(ctx context.Context, id string, b *models.Book) error {
	if err := validateBookCopies(b); err != nil {
		return err
	}
	return c.books.UpdateBook(ctx, id, b)
}

// DeleteBook removes a book unconditionally; ledger entries referencing it
// keep their book ID and resolve to an unknown title from then on.
func (c *Catalog) DeleteBook(ctx context.Context, id string) error {
	return c.books.DeleteBook(ctx, id)
}

// SearchMagazines filters on title, publisher, and category. An empty
// query returns the full list, newest publication date first.
func (c *Catalog) SearchMagazines(ctx context.Context, query string) ([]*models.Magazine, error) {
	all, err := c.magazines.ListMagazines(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	var out []*models.Magazine
	for _, m := range all {
		if matchesAny(query, m.Title, m.Publisher, m.Category) {
			out = append(out, m)
		}
	}
	return out, nil
}

// CreateMagazine inserts a magazine.
func (c *Catalog) CreateMagazine(ctx context.Context, m *models.Magazine) error {
	return c.magazines.CreateMagazine(ctx, m)
}

// UpdateMagazine overwrites a magazine.
func (c *Catalog) UpdateMagazine(ctx context.Context, id string, m *models.Magazine) error {
	return c.magazines.UpdateMagazine(ctx, id, m)
}

// DeleteMagazine removes a magazine.
func (c *Catalog) DeleteMagazine(ctx context.Context, id string) error {
	return c.magazines.DeleteMagazine(ctx, id)
}

// SearchJournals filters on title, publisher, category, and ISSN. An empty
// query returns the full list, newest publication year first.
func (c *Catalog) SearchJournals(ctx context.Context, query string) ([]*models.Journal, error) {
	all, err := c.journals.ListJournals(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	var out []*models.Journal
	for _, j := range all {
		if matchesAny(query, j.Title, j.Publisher, j.Category, j.ISSN) {
			out = append(out, j)
		}
	}
	return out, nil
}

// CreateJournal inserts a journal.
func (c *Catalog) CreateJournal(ctx context.Context, j *models.Journal) error {
	return c.journals.CreateJournal(ctx, j)
}

// UpdateJournal overwrites a journal.
func (c *Catalog) UpdateJournal(ctx context.Context, id string, j *models.Journal) error {
	return c.journals.UpdateJournal(ctx, id, j)
}

// DeleteJournal removes a journal.
func (c *Catalog) DeleteJournal(ctx context.Context, id string) error {
	return c.journals.DeleteJournal(ctx, id)
}
