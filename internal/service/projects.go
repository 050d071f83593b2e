package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

// Projects manages the per-year CSP project-title documents: one Word file
// per academic year, index record in the store, bytes in the blob bucket.
type Projects struct {
	files store.ProjectFiles
	blobs store.Blobs

	now func() time.Time
}

// NewProjects wires the project-file service.
func NewProjects(files store.ProjectFiles, blobs store.Blobs) *Projects {
	return &Projects{files: files, blobs: blobs, now: time.Now}
}

// List returns the stored documents, newest academic year first.
func (p *Projects) List(ctx context.Context) ([]*models.ProjectFile, error) {
	return p.files.ListProjectFiles(ctx)
}

func validateProjectUpload(academicYear, fileName string) error {
	errs := make(validate.FieldErrors)
	if strings.TrimSpace(academicYear) == "" {
		errs["academic_year"] = "Academic year is required"
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".doc", ".docx":
	default:
		errs["file"] = "Only .doc and .docx files are accepted"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Upload stores a document for an academic year. When the year already has
// one, the old blob and record are removed first; the replacement is not
// atomic, a crash between the steps leaves the year empty rather than
// double-booked.
func (p *Projects) Upload(ctx context.Context, academicYear, fileName string, content io.Reader, uploadedBy string) (*models.ProjectFile, error) {
	if err := validateProjectUpload(academicYear, fileName); err != nil {
		return nil, err
	}
	academicYear = strings.TrimSpace(academicYear)

	existing, err := p.files.GetProjectFileByYear(ctx, academicYear)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking academic year: %w", err)
	}
	if existing != nil {
		if err := p.blobs.Remove(ctx, existing.FilePath); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("removing old document: %w", err)
		}
		if err := p.files.DeleteProjectFile(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("removing old record: %w", err)
		}
	}

	path := fmt.Sprintf("%s/%d_%s", academicYear, p.now().Unix(), filepath.Base(fileName))
	if err := p.blobs.Upload(ctx, path, content); err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	file := &models.ProjectFile{
		AcademicYear: academicYear,
		FileName:     filepath.Base(fileName),
		FilePath:     path,
		UploadedBy:   uploadedBy,
	}
	if err := p.files.CreateProjectFile(ctx, file); err != nil {
		if remErr := p.blobs.Remove(ctx, path); remErr != nil {
			log.Printf("orphaned blob %s after failed record insert: %v", path, remErr)
		}
		return nil, fmt.Errorf("creating record: %w", err)
	}

	return file, nil
}

// Delete removes a document's record and blob. A missing blob is logged
// and absorbed, the index record is authoritative.
func (p *Projects) Delete(ctx context.Context, id string) error {
	file, err := p.files.GetProjectFile(ctx, id)
	if err != nil {
		return err
	}
	if err := p.files.DeleteProjectFile(ctx, id); err != nil {
		return err
	}
	if err := p.blobs.Remove(ctx, file.FilePath); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("removing blob %s: %v", file.FilePath, err)
	}
	return nil
}

// Open returns the record and a reader over the stored document bytes.
// The caller closes the reader.
func (p *Projects) Open(ctx context.Context, id string) (*models.ProjectFile, io.ReadCloser, error) {
	file, err := p.files.GetProjectFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := p.blobs.Open(ctx, file.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document: %w", err)
	}
	return file, rc, nil
}
