package memstore

import (
	"context"
	"sort"
	"time"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

// --- Books ---

func (s *Store) GetBook(_ context.Context, id string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) CreateBook(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if b.ID == "" {
		b.ID = newID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	s.books[b.ID] = &cp
	return nil
}

func (s *Store) UpdateBook(_ context.Context, id string, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.books[id]
	if !ok {
		return store.ErrNotFound
	}
	b.ID = id
	b.CreatedAt = old.CreatedAt
	b.UpdatedAt = time.Now()

	cp := *b
	s.books[id] = &cp
	return nil
}

func (s *Store) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *Store) ListBooks(_ context.Context) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Book, 0, len(s.books))
	for _, b := range s.books {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// --- Magazines ---

func (s *Store) GetMagazine(_ context.Context, id string) (*models.Magazine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.magazines[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) CreateMagazine(_ context.Context, m *models.Magazine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if m.ID == "" {
		m.ID = newID()
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	cp := *m
	s.magazines[m.ID] = &cp
	return nil
}

func (s *Store) UpdateMagazine(_ context.Context, id string, m *models.Magazine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.magazines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.ID = id
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = time.Now()

	cp := *m
	s.magazines[id] = &cp
	return nil
}

func (s *Store) DeleteMagazine(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.magazines[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.magazines, id)
	return nil
}

func (s *Store) ListMagazines(_ context.Context) ([]*models.Magazine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Magazine, 0, len(s.magazines))
	for _, m := range s.magazines {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublicationDate.After(out[j].PublicationDate)
	})
	return out, nil
}

// --- Journals ---

func (s *Store) GetJournal(_ context.Context, id string) (*models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.journals[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *Store) CreateJournal(_ context.Context, j *models.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if j.ID == "" {
		j.ID = newID()
	}
	j.CreatedAt = now
	j.UpdatedAt = now

	cp := *j
	s.journals[j.ID] = &cp
	return nil
}

func (s *Store) UpdateJournal(_ context.Context, id string, j *models.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.journals[id]
	if !ok {
		return store.ErrNotFound
	}
	j.ID = id
	j.CreatedAt = old.CreatedAt
	j.UpdatedAt = time.Now()

	cp := *j
	s.journals[id] = &cp
	return nil
}

func (s *Store) DeleteJournal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.journals[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.journals, id)
	return nil
}

func (s *Store) ListJournals(_ context.Context) ([]*models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Journal, 0, len(s.journals))
	for _, j := range s.journals {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublicationYear > out[j].PublicationYear
	})
	return out, nil
}
