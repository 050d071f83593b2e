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

// Collections for the reference-only catalog items.
const (
	MagazinesCollection = "magazines"
	JournalsCollection  = "journals"
)

// GetMagazine fetches a magazine by ID.
func (c *Client) GetMagazine(ctx context.Context, id string) (*models.Magazine, error) {
	if id == "" {
		return nil, fmt.Errorf("magazine ID must not be empty")
	}

	doc, err := c.Firestore.Collection(MagazinesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching magazine: %w", err)
	}

	var m models.Magazine
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("parsing magazine: %w", err)
	}
	m.ID = doc.Ref.ID

	return &m, nil
}

// CreateMagazine inserts a new magazine.
func (c *Client) CreateMagazine(ctx context.Context, m *models.Magazine) error {
	if m == nil {
		return fmt.Errorf("magazine must not be nil")
	}
	if m.Title == "" {
		return fmt.Errorf("magazine title is required")
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	var docRef *firestore.DocumentRef
	if m.ID == "" {
		docRef = c.Firestore.Collection(MagazinesCollection).NewDoc()
		m.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(MagazinesCollection).Doc(m.ID)
	}

	if _, err := docRef.Set(ctx, m); err != nil {
		return fmt.Errorf("saving magazine: %w", err)
	}

	return nil
}

// UpdateMagazine overwrites an existing magazine.
func (c *Client) UpdateMagazine(ctx context.Context, id string, m *models.Magazine) error {
	if id == "" {
		return fmt.Errorf("magazine ID must not be empty")
	}
	if m == nil {
		return fmt.Errorf("magazine must not be nil")
	}

	old, err := c.GetMagazine(ctx, id)
	if err != nil {
		return err
	}

	m.ID = id
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = time.Now()

	if _, err := c.Firestore.Collection(MagazinesCollection).Doc(id).Set(ctx, m); err != nil {
		return fmt.Errorf("updating magazine: %w", err)
	}

	return nil
}

// DeleteMagazine removes a magazine.
func (c *Client) DeleteMagazine(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("magazine ID must not be empty")
	}

	if _, err := c.GetMagazine(ctx, id); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(MagazinesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting magazine: %w", err)
	}

	return nil
}

// ListMagazines returns every magazine, newest publication date first.
func (c *Client) ListMagazines(ctx context.Context) ([]*models.Magazine, error) {
	var magazines []*models.Magazine

	iter := c.Firestore.Collection(MagazinesCollection).
		OrderBy("publication_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating magazines: %w", err)
		}

		var m models.Magazine
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("parsing magazine: %w", err)
		}
		m.ID = doc.Ref.ID

		magazines = append(magazines, &m)
	}

	return magazines, nil
}

// GetJournal fetches a journal by ID.
func (c *Client) GetJournal(ctx context.Context, id string) (*models.Journal, error) {
	if id == "" {
		return nil, fmt.Errorf("journal ID must not be empty")
	}

	doc, err := c.Firestore.Collection(JournalsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching journal: %w", err)
	}

	var j models.Journal
	if err := doc.DataTo(&j); err != nil {
		return nil, fmt.Errorf("parsing journal: %w", err)
	}
	j.ID = doc.Ref.ID

	return &j, nil
}

// CreateJournal inserts a new journal.
func (c *Client) CreateJournal(ctx context.Context, j *models.Journal) error {
	if j == nil {
		return fmt.Errorf("journal must not be nil")
	}
	if j.Title == "" {
		return fmt.Errorf("journal title is required")
	}

	now := time.Now()
	j.CreatedAt = now
	j.UpdatedAt = now

	var docRef *firestore.DocumentRef
	if j.ID == "" {
		docRef = c.Firestore.Collection(JournalsCollection).NewDoc()
		j.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(JournalsCollection).Doc(j.ID)
	}

	if _, err := docRef.Set(ctx, j); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}

	return nil
}

// UpdateJournal overwrites an existing journal.
func (c *Client) UpdateJournal(ctx context.Context, id string, j *models.Journal) error {
	if id == "" {
		return fmt.Errorf("journal ID must not be empty")
	}
	if j == nil {
		return fmt.Errorf("journal must not be nil")
	}

	old, err := c.GetJournal(ctx, id)
	if err != nil {
		return err
	}

	j.ID = id
	j.CreatedAt = old.CreatedAt
	j.UpdatedAt = time.Now()

	if _, err := c.Firestore.Collection(JournalsCollection).Doc(id).Set(ctx, j); err != nil {
		return fmt.Errorf("updating journal: %w", err)
	}

	return nil
}

// DeleteJournal removes a journal.
func (c *Client) DeleteJournal(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("journal ID must not be empty")
	}

	if _, err := c.GetJournal(ctx, id); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(JournalsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting journal: %w", err)
	}

	return nil
}

// ListJournals returns every journal, newest publication year first.
func (c *Client) ListJournals(ctx context.Context) ([]*models.Journal, error) {
	var journals []*models.Journal

	iter := c.Firestore.Collection(JournalsCollection).
		OrderBy("publication_year", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating journals: %w", err)
		}

		var j models.Journal
		if err := doc.DataTo(&j); err != nil {
			return nil, fmt.Errorf("parsing journal: %w", err)
		}
		j.ID = doc.Ref.ID

		journals = append(journals, &j)
	}

	return journals, nil
}
