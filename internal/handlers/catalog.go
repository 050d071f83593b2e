package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"it-library-portal/internal/models"
	"it-library-portal/internal/service"
)

// CatalogHandler serves the book, magazine, and journal collections. The
// list endpoints double as search via the q query parameter and back both
// the member and the public browse pages.
type CatalogHandler struct {
	catalog *service.Catalog
}

// NewCatalogHandler wires the catalog endpoints.
func NewCatalogHandler(catalog *service.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListBooks returns books matching q, or all books when q is empty.
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.SearchBooks(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, books)
}

// GetBook returns one book.
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, book)
}

// CreateBook inserts a book.
func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if !decodeBody(w, r, &book) {
		return
	}
	if err := h.catalog.CreateBook(r.Context(), &book); err != nil {
		fail(w, err)
		return
	}
	created(w, book)
}

// UpdateBook overwrites a book.
func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if !decodeBody(w, r, &book) {
		return
	}
	if err := h.catalog.UpdateBook(r.Context(), chi.URLParam(r, "id"), &book); err != nil {
		fail(w, err)
		return
	}
	ok(w, book)
}

// DeleteBook removes a book.
func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}

// ListMagazines returns magazines matching q, newest first.
func (h *CatalogHandler) ListMagazines(w http.ResponseWriter, r *http.Request) {
	magazines, err := h.catalog.SearchMagazines(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, magazines)
}

// CreateMagazine inserts a magazine.
func (h *CatalogHandler) CreateMagazine(w http.ResponseWriter, r *http.Request) {
	var magazine models.Magazine
	if !decodeBody(w, r, &magazine) {
		return
	}
	if err := h.catalog.CreateMagazine(r.Context(), &magazine); err != nil {
		fail(w, err)
		return
	}
	created(w, magazine)
}

// UpdateMagazine overwrites a magazine.
func (h *CatalogHandler) UpdateMagazine(w http.ResponseWriter, r *http.Request) {
	var magazine models.Magazine
	if !decodeBody(w, r, &magazine) {
		return
	}
	if err := h.catalog.UpdateMagazine(r.Context(), chi.URLParam(r, "id"), &magazine); err != nil {
		fail(w, err)
		return
	}
	ok(w, magazine)
}

// DeleteMagazine removes a magazine.
func (h *CatalogHandler) DeleteMagazine(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMagazine(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}

// ListJournals returns journals matching q, newest first.
func (h *CatalogHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.catalog.SearchJournals(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, journals)
}

// CreateJournal inserts a journal.
func (h *CatalogHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var journal models.Journal
	if !decodeBody(w, r, &journal) {
		return
	}
	if err := h.catalog.CreateJournal(r.Context(), &journal); err != nil {
		fail(w, err)
		return
	}
	created(w, journal)
}

// UpdateJournal overwrites a journal.
func (h *CatalogHandler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	var journal models.Journal
	if !decodeBody(w, r, &journal) {
		return
	}
	if err := h.catalog.UpdateJournal(r.Context(), chi.URLParam(r, "id"), &journal); err != nil {
		fail(w, err)
		return
	}
	ok(w, journal)
}

// DeleteJournal removes a journal.
func (h *CatalogHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteJournal(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}
