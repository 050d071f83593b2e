package models

import "time"

// BorrowStatus is the state of a ledger entry
type BorrowStatus string

const (
	BorrowStatusBorrowed BorrowStatus = "borrowed"
	BorrowStatusReturned BorrowStatus = "returned"
)

// Borrow is one ledger entry: a physical copy, identified by its
// librarian-assigned book code, checked out to a profile.
type Borrow struct {
	ID         string       `json:"id" firestore:"id"`
	BookID     string       `json:"book_id" firestore:"book_id"`
	UserID     string       `json:"user_id" firestore:"user_id"`
	BookCode   string       `json:"book_code" firestore:"book_code"` // Identifies the physical copy issued
	Status     BorrowStatus `json:"status" firestore:"status"`
	BorrowDate time.Time    `json:"borrow_date" firestore:"borrow_date"`
	DueDate    time.Time    `json:"due_date" firestore:"due_date"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty" firestore:"returned_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at" firestore:"created_at"`
}

// IsOverdue is recomputed on every read; overdue is never a stored state.
func (b *Borrow) IsOverdue() bool {
	return b.IsOverdueAt(time.Now())
}

// IsOverdueAt reports whether the entry was overdue at the given instant
func (b *Borrow) IsOverdueAt(now time.Time) bool {
	return b.Status == BorrowStatusBorrowed && b.DueDate.Before(now)
}

// BorrowDetails joins a ledger entry with its book and profile, resolved
// in memory from separate reads.
type BorrowDetails struct {
	Borrow
	Book    *Book    `json:"book,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
	Overdue bool     `json:"overdue"`
}
