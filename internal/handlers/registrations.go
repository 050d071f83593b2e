package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"it-library-portal/internal/models"
	"it-library-portal/internal/service"
)

// RegistrationsHandler serves the librarian's approval queue.
type RegistrationsHandler struct {
	directory *service.Directory
}

// NewRegistrationsHandler wires the approval endpoints.
func NewRegistrationsHandler(directory *service.Directory) *RegistrationsHandler {
	return &RegistrationsHandler{directory: directory}
}

// ListPending returns registrations awaiting a decision.
func (h *RegistrationsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.directory.ListPending(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, pending)
}

// SetStatus approves or rejects a registration and notifies the member.
func (h *RegistrationsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status models.Status `json:"status"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	if err := h.directory.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}
