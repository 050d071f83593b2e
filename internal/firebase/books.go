package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

// BooksCollection is the Firestore collection of circulating books.
const BooksCollection = "books"

// GetBook fetches a book by ID.
func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if id == "" {
		return nil, fmt.Errorf("book ID must not be empty")
	}

	doc, err := c.Firestore.Collection(BooksCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching book: %w", err)
	}

	var b models.Book
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("parsing book: %w", err)
	}
	b.ID = doc.Ref.ID

	return &b, nil
}

// CreateBook inserts a new book.
func (c *Client) CreateBook(ctx context.Context, b *models.Book) error {
	if b == nil {
		return fmt.Errorf("book must not be nil")
	}
	if b.Title == "" {
		return fmt.Errorf("book title is required")
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	var docRef *firestore.DocumentRef
	if b.ID == "" {
		docRef = c.Firestore.Collection(BooksCollection).NewDoc()
		b.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(BooksCollection).Doc(b.ID)
	}

	if _, err := docRef.Set(ctx, b); err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	return nil
}

// UpdateBook overwrites an existing book.
func (c *Client) UpdateBook(ctx context.Context, id string, b *models.Book) error {
	if id == "" {
		return fmt.Errorf("book ID must not be empty")
	}
	if b == nil {
		return fmt.Errorf("book must not be nil")
	}

	old, err := c.GetBook(ctx, id)
	if err != nil {
		return err
	}

	b.ID = id
	b.CreatedAt = old.CreatedAt
	b.UpdatedAt = time.Now()

	if _, err := c.Firestore.Collection(BooksCollection).Doc(id).Set(ctx, b); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	return nil
}

// DeleteBook removes a book. Ledger entries pointing at it are left alone.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("book ID must not be empty")
	}

	if _, err := c.GetBook(ctx, id); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(BooksCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	return nil
}

// ListBooks returns every book ordered by title.
func (c *Client) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book

	iter := c.Firestore.Collection(BooksCollection).
		OrderBy("title", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating books: %w", err)
		}

		var b models.Book
		if err := doc.DataTo(&b); err != nil {
			return nil, fmt.Errorf("parsing book: %w", err)
		}
		b.ID = doc.Ref.ID

		books = append(books, &b)
	}

	return books, nil
}
