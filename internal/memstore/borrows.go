package memstore

import (
	"context"
	"sort"
	"time"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

func (s *Store) GetBorrow(_ context.Context, id string) (*models.Borrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.borrows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) ActiveBorrowByCode(_ context.Context, code string) (*models.Borrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.activeCodes[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.borrows[id]
	return &cp, nil
}

// CreateBorrow reserves the book code and inserts the entry under one lock,
// mirroring the transactional reservation the Firestore backend does.
func (s *Store) CreateBorrow(_ context.Context, b *models.Borrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.activeCodes[b.BookCode]; held {
		return store.ErrCodeIssued
	}

	if b.ID == "" {
		b.ID = newID()
	}
	b.Status = models.BorrowStatusBorrowed
	b.CreatedAt = time.Now()

	cp := *b
	s.borrows[b.ID] = &cp
	s.activeCodes[b.BookCode] = b.ID
	return nil
}

func (s *Store) MarkBorrowReturned(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.borrows[id]
	if !ok {
		return store.ErrNotFound
	}
	b.Status = models.BorrowStatusReturned
	b.ReturnedAt = &at
	delete(s.activeCodes, b.BookCode)
	return nil
}

func (s *Store) ListBorrows(_ context.Context) ([]*models.Borrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Borrow, 0, len(s.borrows))
	for _, b := range s.borrows {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BorrowDate.After(out[j].BorrowDate)
	})
	return out, nil
}

func (s *Store) ListBorrowsByUser(_ context.Context, userID string) ([]*models.Borrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Borrow
	for _, b := range s.borrows {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BorrowDate.After(out[j].BorrowDate)
	})
	return out, nil
}
