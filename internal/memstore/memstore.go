// Package memstore is the in-memory backend. It backs the tests and the
// degraded mode the server falls into when Firebase credentials are absent.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

// Store holds every collection behind one mutex. Good enough for a
// single-process dev server and for tests.
type Store struct {
	mu sync.Mutex

	profiles     map[string]*models.Profile
	books        map[string]*models.Book
	magazines    map[string]*models.Magazine
	journals     map[string]*models.Journal
	borrows      map[string]*models.Borrow
	activeCodes  map[string]string // book code -> borrow ID holding it
	projectFiles map[string]*models.ProjectFile
}

// New returns an empty store.
func New() *Store {
	return &Store{
		profiles:     make(map[string]*models.Profile),
		books:        make(map[string]*models.Book),
		magazines:    make(map[string]*models.Magazine),
		journals:     make(map[string]*models.Journal),
		borrows:      make(map[string]*models.Borrow),
		activeCodes:  make(map[string]string),
		projectFiles: make(map[string]*models.ProjectFile),
	}
}

func newID() string {
	return uuid.NewString()
}

// --- Profiles ---

func (s *Store) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) GetProfileForLogin(_ context.Context, identifier string, role models.Role) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Role == role && strings.EqualFold(p.RollOrFacultyID, identifier) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindProfileByIdentifier(_ context.Context, identifier string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if strings.EqualFold(p.RollOrFacultyID, identifier) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindProfileByRole(_ context.Context, role models.Role) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Role == role {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.RollOrFacultyID != "" {
		for _, existing := range s.profiles {
			if strings.EqualFold(existing.RollOrFacultyID, p.RollOrFacultyID) {
				return store.ErrIdentifierTaken
			}
		}
	}

	now := time.Now()
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *Store) SetProfileStatus(_ context.Context, id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (s *Store) ListPendingProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.listByStatus(models.StatusPending)
}

func (s *Store) ListActiveProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.listByStatus(models.StatusActive)
}

func (s *Store) listByStatus(status models.Status) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Profile
	for _, p := range s.profiles {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
