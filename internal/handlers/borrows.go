package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"it-library-portal/internal/middleware"
	"it-library-portal/internal/service"
)

// BorrowsHandler serves the librarian's ledger and the member's own
// borrow history.
type BorrowsHandler struct {
	ledger *service.Ledger
}

// NewBorrowsHandler wires the ledger endpoints.
func NewBorrowsHandler(ledger *service.Ledger) *BorrowsHandler {
	return &BorrowsHandler{ledger: ledger}
}

// List returns the whole ledger joined with books and members.
func (h *BorrowsHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.ledger.ListDetails(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, details)
}

// Issue checks a copy out to a member.
func (h *BorrowsHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BookID   string `json:"book_id"`
		UserID   string `json:"user_id"`
		BookCode string `json:"book_code"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	borrow, err := h.ledger.Issue(r.Context(), in.BookID, in.UserID, in.BookCode)
	if err != nil {
		fail(w, err)
		return
	}
	created(w, borrow)
}

// Return closes a ledger entry.
func (h *BorrowsHandler) Return(w http.ResponseWriter, r *http.Request) {
	borrow, err := h.ledger.Return(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, borrow)
}

// Mine returns the calling member's joined borrow history.
func (h *BorrowsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.FromContext(r.Context())
	details, err := h.ledger.ListByUser(r.Context(), sess.ProfileID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, details)
}
