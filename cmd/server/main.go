// The server command runs the IT department library portal. With Firebase
// credentials configured it runs against Firestore and the storage bucket;
// without them it falls back to the in-memory backend so the app stays
// usable for local development.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"it-library-portal/internal/firebase"
	"it-library-portal/internal/handlers"
	"it-library-portal/internal/memstore"
	"it-library-portal/internal/middleware"
	"it-library-portal/internal/models"
	"it-library-portal/internal/notify"
	"it-library-portal/internal/service"
	"it-library-portal/internal/session"
	"it-library-portal/internal/store"
)

// backends groups the repository interfaces one storage implementation
// satisfies, so main can swap Firestore for the in-memory store wholesale.
type backends struct {
	profiles     store.Profiles
	books        store.Books
	magazines    store.Magazines
	journals     store.Journals
	borrows      store.Borrows
	projectFiles store.ProjectFiles
	blobs        store.Blobs
	credentials  store.Credentials
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	ctx := context.Background()

	var be backends
	if fb, err := firebase.Init(ctx); err != nil {
		log.Printf("firebase unavailable (%v), running on the in-memory backend", err)
		mem := memstore.New()
		be = backends{
			profiles: mem, books: mem, magazines: mem, journals: mem,
			borrows: mem, projectFiles: mem,
			blobs:       memstore.NewBlobs(),
			credentials: memstore.NewCredentials(),
		}
	} else {
		defer fb.Close()
		be = backends{
			profiles: fb, books: fb, magazines: fb, journals: fb,
			borrows: fb, projectFiles: fb,
			blobs:       fb,
			credentials: fb,
		}
	}

	var notifier notify.Port
	if key := os.Getenv("SMS_API_KEY"); key != "" {
		notifier = notify.NewSMSGateway(key, os.Getenv("SMS_API_URL"))
	} else {
		log.Println("SMS_API_KEY not set, SMS notifications go to the log")
		notifier = notify.NewLogger()
	}

	sessions := session.NewManager()
	defer sessions.Close()
	gate := middleware.NewGate(sessions)

	auth := service.NewAuth(be.profiles, be.credentials, notifier)
	directory := service.NewDirectory(be.profiles, notifier)
	catalog := service.NewCatalog(be.books, be.magazines, be.journals)
	ledger := service.NewLedger(be.borrows, be.books, be.profiles, notifier)
	projects := service.NewProjects(be.projectFiles, be.blobs)

	authH := handlers.NewAuthHandler(auth, sessions)
	registrationsH := handlers.NewRegistrationsHandler(directory)
	catalogH := handlers.NewCatalogHandler(catalog)
	borrowsH := handlers.NewBorrowsHandler(ledger)
	projectsH := handlers.NewProjectsHandler(projects)
	reportsH := handlers.NewReportsHandler(catalog, ledger, directory)
	setupH := handlers.NewSetupHandler(auth)
	dashboardsH := handlers.NewDashboardHandler(catalog, ledger, directory)

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(gate.WithSession)

	r.Get("/", handlers.Home)
	r.Get("/about", handlers.About)
	r.Get("/search", catalogH.ListBooks)
	r.Post("/login", authH.Login)
	r.Post("/register", authH.Register)
	r.Post("/logout", authH.Logout)
	r.Get("/account-status", authH.AccountStatus)
	r.Get("/me", authH.Me)
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
		r.Get("/books/{id}", catalogH.GetBook)
		r.Put("/books/{id}", catalogH.UpdateBook)
		r.Delete("/books/{id}", catalogH.DeleteBook)

		r.Get("/magazines", catalogH.ListMagazines)
		r.Post("/magazines", catalogH.CreateMagazine)
		r.Put("/magazines/{id}", catalogH.UpdateMagazine)
		r.Delete("/magazines/{id}", catalogH.DeleteMagazine)

		r.Get("/journals", catalogH.ListJournals)
		r.Post("/journals", catalogH.CreateJournal)
		r.Put("/journals/{id}", catalogH.UpdateJournal)
		r.Delete("/journals/{id}", catalogH.DeleteJournal)

		r.Get("/borrows", borrowsH.List)
		r.Post("/borrows", borrowsH.Issue)
		r.Post("/borrows/{id}/return", borrowsH.Return)

		r.Get("/csp-projects", projectsH.List)
		r.Post("/csp-projects", projectsH.Upload)
		r.Delete("/csp-projects/{id}", projectsH.Delete)
		r.Get("/csp-projects/{id}/download", projectsH.Download)

		r.Get("/reports/books", reportsH.Books)
		r.Get("/reports/borrows", reportsH.Borrows)
		r.Get("/reports/users", reportsH.Users)
	})

	memberRoutes := func(role models.Role) func(chi.Router) {
		return func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Use(gate.RequireRole(role))
			r.Use(gate.RequireActive)

			r.Get("/dashboard", dashboardsH.Member)
			r.Get("/search", catalogH.ListBooks)
			r.Get("/borrowed", borrowsH.Mine)
			r.Get("/magazines", catalogH.ListMagazines)
			r.Get("/journals", catalogH.ListJournals)
			r.Get("/csp-projects", projectsH.List)
			r.Get("/csp-projects/{id}/download", projectsH.Download)
		}
	}
	r.Route("/student", memberRoutes(models.RoleStudent))
	r.Route("/faculty", memberRoutes(models.RoleFaculty))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("library portal listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
