package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"it-library-portal/internal/memstore"
	"it-library-portal/internal/models"
	"it-library-portal/internal/validate"
)

type ledgerFixture struct {
	ledger   *Ledger
	mem      *memstore.Store
	notifier *recordingNotifier
	book     *models.Book
	member   *models.Profile
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()

	mem := memstore.New()
	notifier := &recordingNotifier{}
	ledger := NewLedger(mem, mem, mem, notifier)

	book := &models.Book{Title: "Operating System Concepts", Author: "Silberschatz", TotalCopies: 5, AvailableCopies: 5}
	if err := mem.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() = %v", err)
	}

	member := &models.Profile{
		Name:            "Asha Rao",
		Role:            models.RoleStudent,
		RollOrFacultyID: "23481A12K9",
		Phone:           "9876543210",
		Status:          models.StatusActive,
	}
	if err := mem.CreateProfile(ctx, member); err != nil {
		t.Fatalf("CreateProfile() = %v", err)
	}

	return &ledgerFixture{ledger: ledger, mem: mem, notifier: notifier, book: book, member: member}
}

func TestIssueCreatesBorrowedEntry(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	issuedAt := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	f.ledger.now = func() time.Time { return issuedAt }

	borrow, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	if borrow.Status != models.BorrowStatusBorrowed {
		t.Errorf("Status = %q, want borrowed", borrow.Status)
	}
	if want := issuedAt.AddDate(0, 6, 0); !borrow.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", borrow.DueDate, want)
	}

	sent := f.notifier.sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if sent[0].phone != f.member.Phone {
		t.Errorf("SMS phone = %q, want %q", sent[0].phone, f.member.Phone)
	}
	if !strings.Contains(sent[0].message, f.book.Title) || !strings.Contains(sent[0].message, "Due date") {
		t.Errorf("SMS message = %q, want title and due date", sent[0].message)
	}
}

func TestIssueDueDateCrossesShortMonths(t *testing.T) {
	// AddDate normalizes: six months from 31 Dec lands on 1 Jul, since
	// 31 Jun does not exist.
	f := newLedgerFixture(t)
	f.ledger.now = func() time.Time {
		return time.Date(2026, time.December, 31, 12, 0, 0, 0, time.UTC)
	}

	borrow, err := f.ledger.Issue(context.Background(), f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}
	want := time.Date(2027, time.July, 1, 12, 0, 0, 0, time.UTC)
	if !borrow.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", borrow.DueDate, want)
	}
}

func TestIssueRejectsEmptyCode(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Issue(context.Background(), f.book.ID, f.member.ID, "   ")
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("Issue() = %v, want FieldErrors", err)
	}
}

func TestIssueRejectsHeldCode(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); err != nil {
		t.Fatalf("first Issue() = %v", err)
	}
	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); !errors.Is(err, ErrCodeAlreadyIssued) {
		t.Fatalf("second Issue() = %v, want ErrCodeAlreadyIssued", err)
	}

	// A different code for another physical copy goes through.
	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-002"); err != nil {
		t.Fatalf("Issue() with free code = %v", err)
	}
}

func TestIssueCodeConflictUnderConcurrency(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrCodeAlreadyIssued):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Errorf("%d issues succeeded for one code, want exactly 1", winners)
	}
}

func TestReturnClosesEntryAndFreesCode(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	borrow, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	returned, err := f.ledger.Return(ctx, borrow.ID)
	if err != nil {
		t.Fatalf("Return() = %v", err)
	}
	if returned.Status != models.BorrowStatusReturned {
		t.Errorf("Status = %q, want returned", returned.Status)
	}
	if returned.ReturnedAt == nil {
		t.Error("ReturnedAt not set")
	}

	sent := f.notifier.sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want issue + return", len(sent))
	}
	if !strings.Contains(sent[1].message, "successfully returned") {
		t.Errorf("return SMS = %q", sent[1].message)
	}

	// The code is free again for the next member.
	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); err != nil {
		t.Fatalf("re-Issue() after return = %v", err)
	}
}

func TestReturnRejectsClosedEntry(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	borrow, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}
	if _, err := f.ledger.Return(ctx, borrow.ID); err != nil {
		t.Fatalf("Return() = %v", err)
	}

	if _, err := f.ledger.Return(ctx, borrow.ID); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("second Return() = %v, want ErrAlreadyReturned", err)
	}
}

func TestIssueAndReturnSurviveNotifierOutage(t *testing.T) {
	f := newLedgerFixture(t)
	f.ledger.notifier = failingNotifier{}
	ctx := context.Background()

	borrow, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v, notifier failure must not block", err)
	}
	if _, err := f.ledger.Return(ctx, borrow.ID); err != nil {
		t.Fatalf("Return() = %v, notifier failure must not block", err)
	}
}

func TestIssueLeavesAvailableCopiesAlone(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	book, err := f.mem.GetBook(ctx, f.book.ID)
	if err != nil {
		t.Fatalf("GetBook() = %v", err)
	}
	if book.AvailableCopies != 5 {
		t.Errorf("AvailableCopies = %d, counters are librarian-maintained and must not move", book.AvailableCopies)
	}
}

func TestListDetailsJoinsAndComputesOverdue(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	issuedAt := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	f.ledger.now = func() time.Time { return issuedAt }
	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	// One day before the due date: not overdue.
	f.ledger.now = func() time.Time { return issuedAt.AddDate(0, 6, -1) }
	details, err := f.ledger.ListDetails(ctx)
	if err != nil {
		t.Fatalf("ListDetails() = %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("len(details) = %d, want 1", len(details))
	}
	d := details[0]
	if d.Overdue {
		t.Error("entry overdue before the due date")
	}
	if d.Book == nil || d.Book.Title != f.book.Title {
		t.Errorf("joined book = %+v, want %q", d.Book, f.book.Title)
	}
	if d.Profile == nil || d.Profile.ID != f.member.ID {
		t.Errorf("joined profile = %+v, want %q", d.Profile, f.member.ID)
	}

	// One day past the due date: overdue, recomputed on read.
	f.ledger.now = func() time.Time { return issuedAt.AddDate(0, 6, 1) }
	details, err = f.ledger.ListDetails(ctx)
	if err != nil {
		t.Fatalf("ListDetails() = %v", err)
	}
	if !details[0].Overdue {
		t.Error("entry not overdue past the due date")
	}
}

func TestListByUserScopesToMember(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	other := &models.Profile{
		Name:            "Ravi Kumar",
		Role:            models.RoleFaculty,
		RollOrFacultyID: "IT_00042",
		Phone:           "9123456789",
		Status:          models.StatusActive,
	}
	if err := f.mem.CreateProfile(ctx, other); err != nil {
		t.Fatalf("CreateProfile() = %v", err)
	}

	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001"); err != nil {
		t.Fatalf("Issue() = %v", err)
	}
	if _, err := f.ledger.Issue(ctx, f.book.ID, other.ID, "OS-002"); err != nil {
		t.Fatalf("Issue() = %v", err)
	}

	mine, err := f.ledger.ListByUser(ctx, f.member.ID)
	if err != nil {
		t.Fatalf("ListByUser() = %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != f.member.ID {
		t.Fatalf("ListByUser() returned %d entries for the wrong member", len(mine))
	}
}

func TestCounts(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	issuedAt := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	f.ledger.now = func() time.Time { return issuedAt }

	b1, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-001")
	if err != nil {
		t.Fatalf("Issue() = %v", err)
	}
	if _, err := f.ledger.Issue(ctx, f.book.ID, f.member.ID, "OS-002"); err != nil {
		t.Fatalf("Issue() = %v", err)
	}
	if _, err := f.ledger.Return(ctx, b1.ID); err != nil {
		t.Fatalf("Return() = %v", err)
	}

	// Past the due date, the remaining active entry is also overdue.
	f.ledger.now = func() time.Time { return issuedAt.AddDate(0, 7, 0) }

	counts, err := f.ledger.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll() = %v", err)
	}
	if counts.Active != 1 || counts.Overdue != 1 {
		t.Errorf("CountAll() = %+v, want 1 active, 1 overdue", counts)
	}

	byUser, err := f.ledger.CountByUser(ctx, f.member.ID)
	if err != nil {
		t.Fatalf("CountByUser() = %v", err)
	}
	if byUser != counts {
		t.Errorf("CountByUser() = %+v, want %+v", byUser, counts)
	}
}
