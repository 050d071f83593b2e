package handlers

import (
	"errors"
	"net/http"

	"it-library-portal/internal/service"
)

// SeedKey guards the unauthenticated one-shot bootstrap endpoint. It only
// provisions a fixed account, so a leaked key cannot mint arbitrary logins.
const SeedKey = "init-library-2024"

// SetupHandler provisions the librarian account.
type SetupHandler struct {
	auth *service.Auth
}

// NewSetupHandler wires the bootstrap endpoints.
func NewSetupHandler(auth *service.Auth) *SetupHandler {
	return &SetupHandler{auth: auth}
}

// Provision creates the fixed librarian account. Repeat calls report the
// existing account as a conflict.
func (h *SetupHandler) Provision(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.ProvisionLibrarian(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrLibrarianExists) {
			writeJSON(w, http.StatusConflict, err.Error(), profile)
			return
		}
		fail(w, err)
		return
	}
	created(w, profile)
}

// Seed is the key-guarded GET variant of Provision, usable from a browser
// before any account exists.
func (h *SetupHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") != SeedKey {
		writeJSON(w, http.StatusForbidden, "invalid seed key", nil)
		return
	}
	h.Provision(w, r)
}
