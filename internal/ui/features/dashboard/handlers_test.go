package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/layout"
	"github.com/slahq/sla/internal/testutil"
	"github.com/slahq/sla/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	return NewHandlers(fixture.Store, testutil.NewTestLogger(t)), fixture
}

func decodeLayout(t *testing.T, rec *httptest.ResponseRecorder) []core.CardConfig {
	t.Helper()

	var resp layoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	return resp.Cards
}

func TestGetLayout_RequiresAuth(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/layout", nil)
	rec := httptest.NewRecorder()

	h.GetLayout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetLayout_DefaultsForNewUser(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.AsUser(httptest.NewRequest(http.MethodGet, "/api/dashboard/layout", nil), "user_a")
	rec := httptest.NewRecorder()

	h.GetLayout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cards := decodeLayout(t, rec)
	assert.Len(t, cards, len(core.KnownCardKeys))
	for _, c := range cards {
		assert.True(t, c.Visible)
		assert.Equal(t, core.CardSizeMedium, c.Size)
	}
}

func TestPutLayout_RoundTrip(t *testing.T) {
	h, _ := setupTestHandlers(t)

	body := `{"cards":[
		{"key":"cost_trend","visible":true,"size":"lg"},
		{"key":"spend_summary","visible":false,"size":"sm"}
	]}`
	putReq := features.AsUser(httptest.NewRequest(http.MethodPut, "/api/dashboard/layout", strings.NewReader(body)), "user_a")
	putRec := httptest.NewRecorder()

	h.PutLayout(putRec, putReq)

	require.Equal(t, http.StatusOK, putRec.Code)
	cards := decodeLayout(t, putRec)
	// Submitted cards lead, the rest are appended visible.
	require.Len(t, cards, len(core.KnownCardKeys))
	assert.Equal(t, core.CardKey("cost_trend"), cards[0].Key)
	assert.Equal(t, core.CardSizeLarge, cards[0].Size)
	assert.False(t, cards[1].Visible)

	getReq := features.AsUser(httptest.NewRequest(http.MethodGet, "/api/dashboard/layout", nil), "user_a")
	getRec := httptest.NewRecorder()
	h.GetLayout(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, cards, decodeLayout(t, getRec))
}

func TestPutLayout_DropsUnknownKeys(t *testing.T) {
	h, _ := setupTestHandlers(t)

	body := `{"cards":[{"key":"crypto_ticker","visible":true,"size":"md"}]}`
	req := features.AsUser(httptest.NewRequest(http.MethodPut, "/api/dashboard/layout", strings.NewReader(body)), "user_a")
	rec := httptest.NewRecorder()

	h.PutLayout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range decodeLayout(t, rec) {
		assert.NotEqual(t, core.CardKey("crypto_ticker"), c.Key)
	}
}

func TestGetLayout_CorruptStoredBlobFallsBack(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	require.NoError(t, fixture.Store.SetLayout(context.Background(), "user_a", layout.Key, []byte("{corrupt")))

	req := features.AsUser(httptest.NewRequest(http.MethodGet, "/api/dashboard/layout", nil), "user_a")
	rec := httptest.NewRecorder()

	h.GetLayout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, layout.Default(), decodeLayout(t, rec))
}

func TestLayout_IsPerUser(t *testing.T) {
	h, _ := setupTestHandlers(t)

	body := `{"cards":[{"key":"supplier_risk","visible":false,"size":"sm"}]}`
	putReq := features.AsUser(httptest.NewRequest(http.MethodPut, "/api/dashboard/layout", strings.NewReader(body)), "user_a")
	h.PutLayout(httptest.NewRecorder(), putReq)

	getReq := features.AsUser(httptest.NewRequest(http.MethodGet, "/api/dashboard/layout", nil), "user_b")
	rec := httptest.NewRecorder()
	h.GetLayout(rec, getReq)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, layout.Default(), decodeLayout(t, rec))
}
