package memstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

func (s *Store) GetProjectFile(_ context.Context, id string) (*models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.projectFiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *Store) GetProjectFileByYear(_ context.Context, academicYear string) (*models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.projectFiles {
		if f.AcademicYear == academicYear {
			cp := *f
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateProjectFile(_ context.Context, f *models.ProjectFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.projectFiles {
		if existing.AcademicYear == f.AcademicYear {
			return store.ErrYearTaken
		}
	}

	if f.ID == "" {
		f.ID = newID()
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now()
	}

	cp := *f
	s.projectFiles[f.ID] = &cp
	return nil
}

func (s *Store) DeleteProjectFile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectFiles[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.projectFiles, id)
	return nil
}

func (s *Store) ListProjectFiles(_ context.Context) ([]*models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.ProjectFile, 0, len(s.projectFiles))
	for _, f := range s.projectFiles {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AcademicYear > out[j].AcademicYear
	})
	return out, nil
}

// Blobs keeps uploaded documents in memory.
type Blobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewBlobs returns an empty in-memory bucket.
func NewBlobs() *Blobs {
	return &Blobs{files: make(map[string][]byte)}
}

func (b *Blobs) Upload(_ context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.files[path] = data
	b.mu.Unlock()
	return nil
}

func (b *Blobs) Remove(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.files[path]; !ok {
		return store.ErrNotFound
	}
	delete(b.files, path)
	return nil
}

func (b *Blobs) Open(_ context.Context, path string) (io.ReadCloser, error) {
	b.mu.Lock()
	data, ok := b.files[path]
	b.mu.Unlock()

	if !ok {
		return nil, store.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
