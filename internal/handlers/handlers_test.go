package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"it-library-portal/internal/memstore"
	"it-library-portal/internal/middleware"
	"it-library-portal/internal/models"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/service"
	"it-library-portal/internal/session"
)

type testApp struct {
	router   http.Handler
	mem      *memstore.Store
	auth     *service.Auth
	sessions *session.Manager
}

// newTestApp wires the full route tree on the in-memory backend.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mem := memstore.New()
	creds := memstore.NewCredentials()
	blobs := memstore.NewBlobs()
	notifier := notify.NewLogger()

	sessions := session.NewManager()
	t.Cleanup(sessions.Close)
	gate := middleware.NewGate(sessions)

	auth := service.NewAuth(mem, creds, notifier)
	directory := service.NewDirectory(mem, notifier)
	catalog := service.NewCatalog(mem, mem, mem)
	ledger := service.NewLedger(mem, mem, mem, notifier)
	projects := service.NewProjects(mem, blobs)

	authH := NewAuthHandler(auth, sessions)
	registrationsH := NewRegistrationsHandler(directory)
	catalogH := NewCatalogHandler(catalog)
	borrowsH := NewBorrowsHandler(ledger)
	projectsH := NewProjectsHandler(projects)
	reportsH := NewReportsHandler(catalog, ledger, directory)
	setupH := NewSetupHandler(auth)
	dashboardsH := NewDashboardHandler(catalog, ledger, directory)

	r := chi.NewRouter()
	r.Use(gate.WithSession)

	r.Get("/", Home)
	r.Get("/search", catalogH.ListBooks)
	r.Post("/login", authH.Login)
	r.Post("/register", authH.Register)
	r.Post("/logout", authH.Logout)
	r.Get("/account-status", authH.AccountStatus)
	r.Post("/setup", setupH.Provision)
	r.Get("/seed-librarian", setupH.Seed)

	r.Route("/librarian", func(r chi.Router) {
		r.Use(gate.RequireAuth)
		r.Use(gate.RequireRole(models.RoleLibrarian))

		r.Get("/dashboard", dashboardsH.Librarian)
		r.Get("/registrations", registrationsH.ListPending)
		r.Post("/registrations/{id}/status", registrationsH.SetStatus)
		r.Get("/books", catalogH.ListBooks)
		r.Post("/books", catalogH.CreateBook)
		r.Post("/borrows", borrowsH.Issue)
		r.Post("/borrows/{id}/return", borrowsH.Return)
		r.Get("/csp-projects", projectsH.List)
		r.Get("/reports/books", reportsH.Books)
	})

	r.Route("/student", func(r chi.Router) {
		r.Use(gate.RequireAuth)
		r.Use(gate.RequireRole(models.RoleStudent))
		r.Use(gate.RequireActive)

		r.Get("/dashboard", dashboardsH.Member)
		r.Get("/borrowed", borrowsH.Mine)
	})

	return &testApp{router: r, mem: mem, auth: auth, sessions: sessions}
}

func (a *testApp) do(t *testing.T, method, path, cookie string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// loginAs provisions a session directly and returns its cookie header.
func (a *testApp) loginAs(t *testing.T, profile *models.Profile) string {
	t.Helper()
	sess, err := a.sessions.Create(profile)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return "session_id=" + sess.ID
}

func (a *testApp) librarianCookie(t *testing.T) string {
	t.Helper()
	profile, err := a.auth.ProvisionLibrarian(context.Background())
	if err != nil {
		t.Fatalf("ProvisionLibrarian() = %v", err)
	}
	return a.loginAs(t, profile)
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/librarian/dashboard", "", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestGateRedirectsWrongRoleHome(t *testing.T) {
	app := newTestApp(t)
	cookie := app.librarianCookie(t)

	rec := app.do(t, http.MethodGet, "/student/dashboard", cookie, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestGateRedirectsPendingToStatusPage(t *testing.T) {
	app := newTestApp(t)

	profile, err := app.auth.Register(context.Background(), service.RegisterInput{
		Role: models.RoleStudent, Name: "Asha Rao", Identifier: "23481A12K9",
		Phone: "9876543210", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}
	cookie := app.loginAs(t, profile)

	rec := app.do(t, http.MethodGet, "/student/dashboard", cookie, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/account-status?status=pending" {
		t.Errorf("Location = %q", loc)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	profile, err := app.auth.Register(ctx, service.RegisterInput{
		Role: models.RoleStudent, Name: "Asha Rao", Identifier: "23481A12K9",
		Phone: "9876543210", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}
	if err := app.mem.SetProfileStatus(ctx, profile.ID, models.StatusActive); err != nil {
		t.Fatalf("SetProfileStatus() = %v", err)
	}

	rec := app.do(t, http.MethodPost, "/login", "", map[string]string{
		"identifier": "23481A12K9", "role": "student", "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" {
			cookie = "session_id=" + c.Value
		}
	}
	if cookie == "" {
		t.Fatal("no session cookie on successful login")
	}

	// The cookie opens the role-scoped routes.
	if rec := app.do(t, http.MethodGet, "/student/dashboard", cookie, nil); rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}

	// Logout invalidates it.
	if rec := app.do(t, http.MethodPost, "/logout", cookie, nil); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if rec := app.do(t, http.MethodGet, "/student/dashboard", cookie, nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("post-logout status = %d, want 303", rec.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	profile, err := app.auth.Register(ctx, service.RegisterInput{
		Role: models.RoleStudent, Name: "Asha Rao", Identifier: "23481A12K9",
		Phone: "9876543210", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}
	if err := app.mem.SetProfileStatus(ctx, profile.ID, models.StatusActive); err != nil {
		t.Fatalf("SetProfileStatus() = %v", err)
	}

	rec := app.do(t, http.MethodPost, "/login", "", map[string]string{
		"identifier": "23481A12K9", "role": "student", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/register", "", map[string]string{
		"role": "faculty", "name": "Ravi Kumar", "identifier": "it_00042",
		"phone": "9123456789", "password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Invalid form comes back as 400 with per-field messages.
	rec = app.do(t, http.MethodPost, "/register", "", map[string]string{
		"role": "student", "name": "X", "identifier": "bad", "phone": "1", "password": "x",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := body.Data["identifier"]; !ok {
		t.Errorf("validation payload = %v, want identifier entry", body.Data)
	}

	// Duplicate identifier is a conflict.
	rec = app.do(t, http.MethodPost, "/register", "", map[string]string{
		"role": "faculty", "name": "Someone Else", "identifier": "IT_00042",
		"phone": "9123456789", "password": "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestSeedLibrarianEndpoint(t *testing.T) {
	app := newTestApp(t)

	if rec := app.do(t, http.MethodGet, "/seed-librarian?key=wrong", "", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("bad key status = %d, want 403", rec.Code)
	}

	rec := app.do(t, http.MethodGet, "/seed-librarian?key="+SeedKey, "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Repeat seeding reports the existing account.
	if rec := app.do(t, http.MethodGet, "/seed-librarian?key="+SeedKey, "", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second seed status = %d, want 409", rec.Code)
	}
}

func TestIssueAndReturnEndpoints(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	cookie := app.librarianCookie(t)

	book := &models.Book{Title: "Computer Networks", TotalCopies: 3, AvailableCopies: 3}
	if err := app.mem.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() = %v", err)
	}
	member := &models.Profile{
		Name: "Asha Rao", Role: models.RoleStudent, RollOrFacultyID: "23481A12K9",
		Phone: "9876543210", Status: models.StatusActive,
	}
	if err := app.mem.CreateProfile(ctx, member); err != nil {
		t.Fatalf("CreateProfile() = %v", err)
	}

	rec := app.do(t, http.MethodPost, "/librarian/borrows", cookie, map[string]string{
		"book_id": book.ID, "user_id": member.ID, "book_code": "CN-001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue status = %d, body %s", rec.Code, rec.Body.String())
	}
	var issued struct {
		Data models.Borrow `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &issued); err != nil {
		t.Fatalf("decoding issue response: %v", err)
	}

	// Same code again conflicts.
	rec = app.do(t, http.MethodPost, "/librarian/borrows", cookie, map[string]string{
		"book_id": book.ID, "user_id": member.ID, "book_code": "CN-001",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate issue status = %d, want 409", rec.Code)
	}

	// The member sees the entry under /student/borrowed.
	memberCookie := app.loginAs(t, member)
	rec = app.do(t, http.MethodGet, "/student/borrowed", memberCookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("borrowed status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CN-001") {
		t.Errorf("borrowed listing missing the entry: %s", rec.Body.String())
	}

	rec = app.do(t, http.MethodPost, "/librarian/borrows/"+issued.Data.ID+"/return", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("return status = %d, body %s", rec.Code, rec.Body.String())
	}

	// A second return is a conflict.
	rec = app.do(t, http.MethodPost, "/librarian/borrows/"+issued.Data.ID+"/return", cookie, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("double return status = %d, want 409", rec.Code)
	}
}

func TestBooksReportDownload(t *testing.T) {
	app := newTestApp(t)
	cookie := app.librarianCookie(t)

	if err := app.mem.CreateBook(context.Background(), &models.Book{Title: "Computer Networks", TotalCopies: 1, AvailableCopies: 1}); err != nil {
		t.Fatalf("CreateBook() = %v", err)
	}

	rec := app.do(t, http.MethodGet, "/librarian/reports/books", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Available_Books_Report") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestPublicSearch(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	for _, title := range []string{"Computer Networks", "Operating System Concepts"} {
		if err := app.mem.CreateBook(ctx, &models.Book{Title: title, TotalCopies: 1, AvailableCopies: 1}); err != nil {
			t.Fatalf("CreateBook() = %v", err)
		}
	}

	rec := app.do(t, http.MethodGet, "/search?q=networks", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Computer Networks") || strings.Contains(body, "Operating System") {
		t.Errorf("search body = %s", body)
	}
}
