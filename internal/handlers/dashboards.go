package handlers

import (
	"net/http"

	"it-library-portal/internal/middleware"
	"it-library-portal/internal/service"
)

// DashboardHandler serves the summary counts behind the landing pages.
type DashboardHandler struct {
	catalog   *service.Catalog
	ledger    *service.Ledger
	directory *service.Directory
}

// NewDashboardHandler wires the dashboard endpoints.
func NewDashboardHandler(catalog *service.Catalog, ledger *service.Ledger, directory *service.Directory) *DashboardHandler {
	return &DashboardHandler{catalog: catalog, ledger: ledger, directory: directory}
}

// Librarian returns catalog size, pending registrations, and ledger counts.
func (h *DashboardHandler) Librarian(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.SearchBooks(r.Context(), "")
	if err != nil {
		fail(w, err)
		return
	}
	pending, err := h.directory.ListPending(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	counts, err := h.ledger.CountAll(r.Context())
	if err != nil {
		fail(w, err)
		return
	}

	ok(w, map[string]interface{}{
		"total_books":           len(books),
		"pending_registrations": len(pending),
		"active_borrows":        counts.Active,
		"overdue_borrows":       counts.Overdue,
	})
}

// Member returns the calling member's own borrow counts.
func (h *DashboardHandler) Member(w http.ResponseWriter, r *http.Request) {
	sess := middleware.FromContext(r.Context())
	counts, err := h.ledger.CountByUser(r.Context(), sess.ProfileID)
	if err != nil {
		fail(w, err)
		return
	}

	ok(w, map[string]interface{}{
		"active_borrows":  counts.Active,
		"overdue_borrows": counts.Overdue,
	})
}
