package firebase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
)

// ProfilesCollection is the Firestore collection of account profiles.
const ProfilesCollection = "profiles"

// GetProfile fetches a profile by document ID.
func (c *Client) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile ID must not be empty")
	}

	doc, err := c.Firestore.Collection(ProfilesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	var p models.Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	p.ID = doc.Ref.ID

	return &p, nil
}

// GetProfileForLogin resolves an identifier scoped to a role. The admin SDK
// runs with service credentials, so the lookup works before authentication.
func (c *Client) GetProfileForLogin(ctx context.Context, identifier string, role models.Role) (*models.Profile, error) {
	iter := c.Firestore.Collection(ProfilesCollection).
		Where("roll_or_faculty_id", "==", strings.ToUpper(identifier)).
		Where("role", "==", string(role)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	return profileFromIter(iter)
}

// FindProfileByIdentifier matches the identifier across every role.
func (c *Client) FindProfileByIdentifier(ctx context.Context, identifier string) (*models.Profile, error) {
	iter := c.Firestore.Collection(ProfilesCollection).
		Where("roll_or_faculty_id", "==", strings.ToUpper(identifier)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	return profileFromIter(iter)
}

// FindProfileByRole returns any profile with the role.
func (c *Client) FindProfileByRole(ctx context.Context, role models.Role) (*models.Profile, error) {
	iter := c.Firestore.Collection(ProfilesCollection).
		Where("role", "==", string(role)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	return profileFromIter(iter)
}

// CreateProfile inserts a profile after re-checking identifier uniqueness.
func (c *Client) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile must not be nil")
	}
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}

	if p.RollOrFacultyID != "" {
		existing, err := c.FindProfileByIdentifier(ctx, p.RollOrFacultyID)
		if err != nil && err != store.ErrNotFound {
			return err
		}
		if existing != nil {
			return store.ErrIdentifierTaken
		}
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	var docRef *firestore.DocumentRef
	if p.ID == "" {
		docRef = c.Firestore.Collection(ProfilesCollection).NewDoc()
		p.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(ProfilesCollection).Doc(p.ID)
	}

	if _, err := docRef.Set(ctx, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	return nil
}

// SetProfileStatus transitions an account's approval state.
func (c *Client) SetProfileStatus(ctx context.Context, id string, st models.Status) error {
	if id == "" {
		return fmt.Errorf("profile ID must not be empty")
	}

	_, err := c.Firestore.Collection(ProfilesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(st)},
		{Path: "updated_at", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		return fmt.Errorf("updating profile status: %w", err)
	}

	return nil
}

// ListPendingProfiles returns registrations awaiting librarian action.
func (c *Client) ListPendingProfiles(ctx context.Context) ([]*models.Profile, error) {
	return c.listProfilesByStatus(ctx, models.StatusPending)
}

// ListActiveProfiles returns every approved account.
func (c *Client) ListActiveProfiles(ctx context.Context) ([]*models.Profile, error) {
	return c.listProfilesByStatus(ctx, models.StatusActive)
}

func (c *Client) listProfilesByStatus(ctx context.Context, st models.Status) ([]*models.Profile, error) {
	var profiles []*models.Profile

	iter := c.Firestore.Collection(ProfilesCollection).
		Where("status", "==", string(st)).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating profiles: %w", err)
		}

		var p models.Profile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("parsing profile: %w", err)
		}
		p.ID = doc.Ref.ID

		profiles = append(profiles, &p)
	}

	return profiles, nil
}

func profileFromIter(iter *firestore.DocumentIterator) (*models.Profile, error) {
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}

	var p models.Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	p.ID = doc.Ref.ID

	return &p, nil
}
