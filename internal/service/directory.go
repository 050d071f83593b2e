package service

import (
	"context"
	"fmt"
	"log"

	"it-library-portal/internal/models"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

// Directory handles registration approval.
type Directory struct {
	profiles store.Profiles
	notifier notify.Port
}

// NewDirectory wires the directory service.
func NewDirectory(profiles store.Profiles, notifier notify.Port) *Directory {
	return &Directory{profiles: profiles, notifier: notifier}
}

// ListPending returns registrations awaiting librarian action.
func (d *Directory) ListPending(ctx context.Context) ([]*models.Profile, error) {
	return d.profiles.ListPendingProfiles(ctx)
}

// SetStatus approves or rejects a registration. The status write is
// unconditional and synchronous; the SMS afterwards is best-effort.
func (d *Directory) SetStatus(ctx context.Context, profileID string, status models.Status) error {
	if status != models.StatusActive && status != models.StatusRejected {
		return validate.FieldErrors{"status": "Status must be active or rejected"}
	}

	profile, err := d.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	if err := d.profiles.SetProfileStatus(ctx, profileID, status); err != nil {
		return err
	}

	var message string
	if status == models.StatusActive {
		message = fmt.Sprintf("Hello %s! Your library account has been approved. You can now login and start borrowing books.", profile.Name)
	} else {
		message = fmt.Sprintf("Hello %s. Your library registration request has been rejected. Please contact the library for more information.", profile.Name)
	}

	if err := d.notifier.Send(ctx, profile.Phone, message); err != nil {
		log.Printf("SMS notification failed for %s: %v", profile.Phone, err)
	}

	return nil
}

// ListActive returns every approved account; used by the reports.
func (d *Directory) ListActive(ctx context.Context) ([]*models.Profile, error) {
	return d.profiles.ListActiveProfiles(ctx)
}
