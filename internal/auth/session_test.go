package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-32-bytes-long!!"

func TestMiddleware_AnonymousPassesThrough(t *testing.T) {
	s := New(testSecret)

	var gotUser string
	handler := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, gotUser)
}

func TestEstablishAndResolve(t *testing.T) {
	s := New(testSecret)

	// Establish a session and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", nil)
	require.NoError(t, s.Establish(rec, req, "user_a"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Replay the cookie through the middleware.
	var gotUser string
	handler := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserID(r.Context())
	}))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "user_a", gotUser)
}

func TestRequireUser(t *testing.T) {
	called := false
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireCaller(t *testing.T) {
	_, err := RequireCaller(t.Context())
	assert.Error(t, err)

	s := New(testSecret)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, s.Establish(rec, req, "user_a"))
}

func TestClear(t *testing.T) {
	s := New(testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, s.Establish(rec, req, "user_a"))
	require.NoError(t, s.Clear(rec, req))
}
