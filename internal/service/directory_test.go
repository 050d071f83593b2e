package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"it-library-portal/internal/memstore"
	"it-library-portal/internal/models"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

func pendingProfile(t *testing.T, mem *memstore.Store) *models.Profile {
	t.Helper()
	p := &models.Profile{
		Name:            "Asha Rao",
		Role:            models.RoleStudent,
		RollOrFacultyID: "23481A12K9",
		Phone:           "9876543210",
		Status:          models.StatusPending,
	}
	if err := mem.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("CreateProfile() = %v", err)
	}
	return p
}

func TestSetStatusApprovesAndNotifies(t *testing.T) {
	mem := memstore.New()
	notifier := &recordingNotifier{}
	directory := NewDirectory(mem, notifier)
	ctx := context.Background()
	p := pendingProfile(t, mem)

	if err := directory.SetStatus(ctx, p.ID, models.StatusActive); err != nil {
		t.Fatalf("SetStatus() = %v", err)
	}

	got, err := mem.GetProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProfile() = %v", err)
	}
	if got.Status != models.StatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}

	sent := notifier.sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if sent[0].phone != p.Phone || !strings.Contains(sent[0].message, "approved") {
		t.Errorf("approval SMS = %+v", sent[0])
	}
}

func TestSetStatusRejectsAndNotifies(t *testing.T) {
	mem := memstore.New()
	notifier := &recordingNotifier{}
	directory := NewDirectory(mem, notifier)
	p := pendingProfile(t, mem)

	if err := directory.SetStatus(context.Background(), p.ID, models.StatusRejected); err != nil {
		t.Fatalf("SetStatus() = %v", err)
	}

	sent := notifier.sent()
	if len(sent) != 1 || !strings.Contains(sent[0].message, "rejected") {
		t.Errorf("rejection SMS = %+v", sent)
	}
}

func TestSetStatusValidatesInput(t *testing.T) {
	mem := memstore.New()
	directory := NewDirectory(mem, &recordingNotifier{})
	ctx := context.Background()
	p := pendingProfile(t, mem)

	err := directory.SetStatus(ctx, p.ID, models.StatusPending)
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("SetStatus(pending) = %v, want FieldErrors", err)
	}

	if err := directory.SetStatus(ctx, "missing", models.StatusActive); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("SetStatus(missing profile) = %v, want ErrNotFound", err)
	}
}

func TestSetStatusSurvivesNotifierOutage(t *testing.T) {
	mem := memstore.New()
	directory := NewDirectory(mem, failingNotifier{})
	ctx := context.Background()
	p := pendingProfile(t, mem)

	if err := directory.SetStatus(ctx, p.ID, models.StatusActive); err != nil {
		t.Fatalf("SetStatus() = %v, notifier failure must not block", err)
	}
	got, _ := mem.GetProfile(ctx, p.ID)
	if got.Status != models.StatusActive {
		t.Errorf("status write lost on notifier failure: %q", got.Status)
	}
}

func TestListPendingAndActive(t *testing.T) {
	mem := memstore.New()
	directory := NewDirectory(mem, &recordingNotifier{})
	ctx := context.Background()

	p := pendingProfile(t, mem)
	active := &models.Profile{
		Name: "Ravi Kumar", Role: models.RoleFaculty,
		RollOrFacultyID: "IT_00042", Phone: "9123456789",
		Status: models.StatusActive,
	}
	if err := mem.CreateProfile(ctx, active); err != nil {
		t.Fatalf("CreateProfile() = %v", err)
	}

	pending, err := directory.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending() = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != p.ID {
		t.Errorf("ListPending() = %+v", pending)
	}

	actives, err := directory.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() = %v", err)
	}
	if len(actives) != 1 || actives[0].ID != active.ID {
		t.Errorf("ListActive() = %+v", actives)
	}
}
