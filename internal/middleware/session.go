// Package middleware gates the role-scoped route trees. Unauthenticated
// requests go to /login, wrong-role requests go home, and accounts that are
// not active yet land on the status page.
package middleware

import (
	"context"
	"net/http"

	"it-library-portal/internal/models"
	"it-library-portal/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Gate wires the session manager into the request pipeline.
type Gate struct {
	sessions *session.Manager
}

// NewGate builds the middleware set around a session manager.
func NewGate(sessions *session.Manager) *Gate {
	return &Gate{sessions: sessions}
}

// WithSession attaches the session, when one exists, to every request.
func (g *Gate) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := g.sessions.FromRequest(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects unauthenticated requests to the login page.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole sends authenticated-but-wrong-role requests home.
func (g *Gate) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := FromContext(r.Context())
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if sess.Profile.Role != role {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActive sends pending or rejected accounts to the status page.
func (g *Gate) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !sess.Profile.IsActive() {
			http.Redirect(w, r, "/account-status?status="+string(sess.Profile.Status), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext returns the request's session, or nil.
func FromContext(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
