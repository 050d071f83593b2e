package firebase

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

// ProjectFilesCollection indexes the CSP project-title documents.
const ProjectFilesCollection = "csp_project_files"

// GetProjectFile fetches a record by ID.
func (c *Client) GetProjectFile(ctx context.Context, id string) (*models.ProjectFile, error) {
	if id == "" {
		return nil, fmt.Errorf("project file ID must not be empty")
	}

	doc, err := c.Firestore.Collection(ProjectFilesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching project file: %w", err)
	}

	var f models.ProjectFile
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	f.ID = doc.Ref.ID

	return &f, nil
}

// GetProjectFileByYear returns the record for an academic year, if any.
func (c *Client) GetProjectFileByYear(ctx context.Context, academicYear string) (*models.ProjectFile, error) {
	iter := c.Firestore.Collection(ProjectFilesCollection).
		Where("academic_year", "==", academicYear).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("searching project files: %w", err)
	}

	var f models.ProjectFile
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	f.ID = doc.Ref.ID

	return &f, nil
}

// CreateProjectFile inserts a record after checking the one-per-year rule.
func (c *Client) CreateProjectFile(ctx context.Context, f *models.ProjectFile) error {
	if f == nil {
		return fmt.Errorf("project file must not be nil")
	}
	if f.AcademicYear == "" {
		return fmt.Errorf("academic year is required")
	}

	existing, err := c.GetProjectFileByYear(ctx, f.AcademicYear)
	if err != nil && err != store.ErrNotFound {
		return err
	}
	if existing != nil {
		return store.ErrYearTaken
	}

	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now()
	}

	var docRef *firestore.DocumentRef
	if f.ID == "" {
		docRef = c.Firestore.Collection(ProjectFilesCollection).NewDoc()
		f.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(ProjectFilesCollection).Doc(f.ID)
	}

	if _, err := docRef.Set(ctx, f); err != nil {
		return fmt.Errorf("saving project file: %w", err)
	}

	return nil
}

// DeleteProjectFile removes a record. The stored blob is deleted separately.
func (c *Client) DeleteProjectFile(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("project file ID must not be empty")
	}

	if _, err := c.GetProjectFile(ctx, id); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(ProjectFilesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting project file: %w", err)
	}

	return nil
}

// ListProjectFiles returns all records, newest academic year first.
func (c *Client) ListProjectFiles(ctx context.Context) ([]*models.ProjectFile, error) {
	var files []*models.ProjectFile

	iter := c.Firestore.Collection(ProjectFilesCollection).
		OrderBy("academic_year", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating project files: %w", err)
		}

		var f models.ProjectFile
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("parsing project file: %w", err)
		}
		f.ID = doc.Ref.ID

		files = append(files, &f)
	}

	return files, nil
}

// Upload writes a document into the storage bucket.
func (c *Client) Upload(ctx context.Context, path string, r io.Reader) error {
	if c.Bucket == nil {
		return fmt.Errorf("storage bucket is not configured")
	}

	w := c.Bucket.Object(path).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing upload of %s: %w", path, err)
	}

	return nil
}

// Remove deletes a document from the storage bucket.
func (c *Client) Remove(ctx context.Context, path string) error {
	if c.Bucket == nil {
		return fmt.Errorf("storage bucket is not configured")
	}

	if err := c.Bucket.Object(path).Delete(ctx); err != nil {
		if err == gcs.ErrObjectNotExist {
			return store.ErrNotFound
		}
		return fmt.Errorf("deleting %s: %w", path, err)
	}

	return nil
}

// Open streams a document out of the storage bucket.
func (c *Client) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if c.Bucket == nil {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	r, err := c.Bucket.Object(path).NewReader(ctx)
	if err != nil {
		if err == gcs.ErrObjectNotExist {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return r, nil
}
