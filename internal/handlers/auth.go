package handlers

import (
	"net/http"

	"it-library-portal/internal/middleware"
	"it-library-portal/internal/models"
	"it-library-portal/internal/service"
	"it-library-portal/internal/session"
)

// AuthHandler serves login, registration, and the account status page.
type AuthHandler struct {
	auth     *service.Auth
	sessions *session.Manager
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(auth *service.Auth, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func homeFor(role models.Role) string {
	switch role {
	case models.RoleLibrarian:
		return "/librarian/dashboard"
	case models.RoleFaculty:
		return "/faculty/dashboard"
	default:
		return "/student/dashboard"
	}
}

// Login authenticates an identifier+role+password triple and opens a
// session on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identifier string      `json:"identifier"`
		Role       models.Role `json:"role"`
		Password   string      `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	profile, err := h.auth.Authenticate(r.Context(), in.Identifier, in.Role, in.Password)
	if err != nil {
		fail(w, err)
		return
	}

	sess, err := h.sessions.Create(profile)
	if err != nil {
		fail(w, err)
		return
	}
	session.SetCookie(w, sess.ID)

	ok(w, map[string]interface{}{
		"profile":  profile,
		"redirect": homeFor(profile.Role),
	})
}

// Logout ends the current session. Safe to call without one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.FromContext(r.Context()); sess != nil {
		h.sessions.Delete(sess.ID)
	}
	session.ClearCookie(w)
	ok(w, nil)
}

// Register files a pending student or faculty account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role       models.Role `json:"role"`
		Name       string      `json:"name"`
		Identifier string      `json:"identifier"`
		Phone      string      `json:"phone"`
		Password   string      `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	profile, err := h.auth.Register(r.Context(), service.RegisterInput{
		Role:       in.Role,
		Name:       in.Name,
		Identifier: in.Identifier,
		Phone:      in.Phone,
		Password:   in.Password,
	})
	if err != nil {
		fail(w, err)
		return
	}

	created(w, profile)
}

// AccountStatus echoes back the status query, the landing spot for
// pending and rejected accounts.
func (h *AuthHandler) AccountStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(models.StatusPending)
	}
	ok(w, map[string]string{"status": status})
}

// Me returns the session's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.FromContext(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, "not logged in", nil)
		return
	}
	ok(w, sess.Profile)
}
