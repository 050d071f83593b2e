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

const (
	// BorrowsCollection is the borrow ledger.
	BorrowsCollection = "borrows"

	// BookCodesCollection holds one document per currently-issued book
	// code, keyed by the code itself. Firestore has no unique indexes, so
	// creating this document inside the same transaction as the ledger
	// insert is what makes the active-code invariant hold under races.
	BookCodesCollection = "book_codes"
)

// GetBorrow fetches a ledger entry by ID.
func (c *Client) GetBorrow(ctx context.Context, id string) (*models.Borrow, error) {
	if id == "" {
		return nil, fmt.Errorf("borrow ID must not be empty")
	}

	doc, err := c.Firestore.Collection(BorrowsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching borrow: %w", err)
	}

	var b models.Borrow
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("parsing borrow: %w", err)
	}
	b.ID = doc.Ref.ID

	return &b, nil
}

// ActiveBorrowByCode returns the borrowed entry holding the code, if any.
func (c *Client) ActiveBorrowByCode(ctx context.Context, code string) (*models.Borrow, error) {
	iter := c.Firestore.Collection(BorrowsCollection).
		Where("book_code", "==", code).
		Where("status", "==", string(models.BorrowStatusBorrowed)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("searching borrows: %w", err)
	}

	var b models.Borrow
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("parsing borrow: %w", err)
	}
	b.ID = doc.Ref.ID

	return &b, nil
}

// CreateBorrow inserts the entry and reserves its book code in one
// transaction. A concurrent insert with the same code loses on the
// reservation document and surfaces as ErrCodeIssued.
func (c *Client) CreateBorrow(ctx context.Context, b *models.Borrow) error {
	if b == nil {
		return fmt.Errorf("borrow must not be nil")
	}
	if b.BookID == "" || b.UserID == "" {
		return fmt.Errorf("book and user IDs are required")
	}
	if b.BookCode == "" {
		return fmt.Errorf("book code is required")
	}

	b.Status = models.BorrowStatusBorrowed
	b.CreatedAt = time.Now()

	docRef := c.Firestore.Collection(BorrowsCollection).NewDoc()
	b.ID = docRef.ID
	codeRef := c.Firestore.Collection(BookCodesCollection).Doc(b.BookCode)

	err := c.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(codeRef, map[string]interface{}{
			"borrow_id": b.ID,
			"issued_at": b.BorrowDate,
		}); err != nil {
			return err
		}
		return tx.Create(docRef, b)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return store.ErrCodeIssued
		}
		return fmt.Errorf("saving borrow: %w", err)
	}

	return nil
}

// MarkBorrowReturned closes the entry and releases its code reservation.
func (c *Client) MarkBorrowReturned(ctx context.Context, id string, at time.Time) error {
	b, err := c.GetBorrow(ctx, id)
	if err != nil {
		return err
	}

	docRef := c.Firestore.Collection(BorrowsCollection).Doc(id)
	codeRef := c.Firestore.Collection(BookCodesCollection).Doc(b.BookCode)

	err = c.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: string(models.BorrowStatusReturned)},
			{Path: "returned_at", Value: at},
		}); err != nil {
			return err
		}
		return tx.Delete(codeRef)
	})
	if err != nil {
		return fmt.Errorf("closing borrow: %w", err)
	}

	return nil
}

// ListBorrows returns the full ledger, newest borrow date first.
func (c *Client) ListBorrows(ctx context.Context) ([]*models.Borrow, error) {
	iter := c.Firestore.Collection(BorrowsCollection).
		OrderBy("borrow_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return borrowsFromIter(iter)
}

// ListBorrowsByUser returns one profile's entries, newest first.
func (c *Client) ListBorrowsByUser(ctx context.Context, userID string) ([]*models.Borrow, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID must not be empty")
	}

	iter := c.Firestore.Collection(BorrowsCollection).
		Where("user_id", "==", userID).
		OrderBy("borrow_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return borrowsFromIter(iter)
}

func borrowsFromIter(iter *firestore.DocumentIterator) ([]*models.Borrow, error) {
	var borrows []*models.Borrow

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating borrows: %w", err)
		}

		var b models.Borrow
		if err := doc.DataTo(&b); err != nil {
			return nil, fmt.Errorf("parsing borrow: %w", err)
		}
		b.ID = doc.Ref.ID

		borrows = append(borrows, &b)
	}

	return borrows, nil
}
