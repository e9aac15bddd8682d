// Package auth resolves a caller identity from the session cookie.
// The upstream identity provider is a black box; by the time a request
// reaches the SLA API, the session either carries a user id or the
// caller is anonymous and every action rejects.
package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/slahq/sla/internal/core"
)

// sessionName is the cookie name for SLA sessions.
const sessionName = "sla_session"

// userIDKey is the session value key holding the caller's user id.
const userIDKey = "user_id"

type contextKey struct{}

// Sessions wraps the cookie store and exposes identity helpers.
type Sessions struct {
	store *sessions.CookieStore
}

// New creates a session boundary with the given signing secret.
func New(secret string) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30) // 30 days
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &Sessions{store: store}
}

// Middleware resolves the session's user id into the request context.
// It never rejects; RequireUser does that where an identity is
// mandatory.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.store.Get(r, sessionName)
		if err == nil {
			if id, ok := session.Values[userIDKey].(string); ok && id != "" {
				r = r.WithContext(WithUser(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests without a resolved identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			http.Error(w, `{"ok":false,"error":"not authenticated"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a context carrying the given caller identity.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the authenticated caller's id, or "" when anonymous.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// Establish writes the user id into the session cookie.
func (s *Sessions) Establish(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to an error but still
		// yields a fresh session; overwrite it.
		session, _ = s.store.New(r, sessionName)
	}
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// Clear removes the session.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// RequireCaller returns the caller id or ErrUnauthenticated. Services
// use it so the check holds even when a handler forgets the
// middleware.
func RequireCaller(ctx context.Context) (string, error) {
	id := UserID(ctx)
	if id == "" {
		return "", core.ErrUnauthenticated
	}
	return id, nil
}
