package dev

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slahq/sla/internal/testutil"
)

func TestEcho(t *testing.T) {
	h := NewHandlers(testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/dev/echo", strings.NewReader(`{"hello":"world"}`))
	rec := httptest.NewRecorder()

	start := time.Now()
	h.Echo(rec, req)
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
	assert.GreaterOrEqual(t, elapsed, echoDelay)
}

func TestEcho_EmptyBody(t *testing.T) {
	h := NewHandlers(testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/dev/echo", nil)
	rec := httptest.NewRecorder()

	h.Echo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
