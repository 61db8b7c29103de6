package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futuresjournal/internal/adapters/sqlite"
	"futuresjournal/internal/app"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	log := &mockLogger{}
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log,
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	service, err := app.NewJournalService(repo, log, 10000)
	require.NoError(t, err)

	srv, err := New(Config{
		Port:           0,
		AllowedOrigins: []string{"*"},
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		Service:        service,
		Users:          repo,
		Logger:         log,
	})
	require.NoError(t, err)
	return srv.Router()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func signupTestUser(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doRequest(t, handler, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "trader@example.com",
		"password": "secret1",
		"name":     "Trader",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	handler := setupTestServer(t)
	rec := doRequest(t, handler, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	handler := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "secret1", "name": "T"}},
		{"malformed email", map[string]string{"email": "nope", "password": "secret1", "name": "T"}},
		{"short password", map[string]string{"email": "t@example.com", "password": "abc", "name": "T"}},
		{"missing name", map[string]string{"email": "t@example.com", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignupDuplicate(t *testing.T) {
	handler := setupTestServer(t)
	signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "trader@example.com",
		"password": "secret1",
		"name":     "Trader",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	handler := setupTestServer(t)
	signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "trader@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email        string `json:"email"`
			Subscription string `json:"subscription"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "trader@example.com", resp.User.Email)
	assert.Equal(t, "free", resp.User.Subscription)

	rec = doRequest(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "trader@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	handler := setupTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/trades/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/trades/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubscriptionUpdate(t *testing.T) {
	handler := setupTestServer(t)
	token := signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/subscription/update", token, map[string]string{
		"subscription": "premium",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/subscription/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "premium", resp["subscription"])

	rec = doRequest(t, handler, http.MethodPost, "/api/subscription/update", token, map[string]string{
		"subscription": "platinum",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeLifecycle(t *testing.T) {
	handler := setupTestServer(t)
	token := signupTestUser(t, handler)

	create := map[string]interface{}{
		"date":       "2025-06-03T14:30:00Z",
		"symbol":     "es",
		"side":       "long",
		"status":     "closed",
		"quantity":   2,
		"entryPrice": 4500.0,
		"exitPrice":  4510.0,
		"commission": 4.5,
		"tags":       []string{"breakout"},
	}
	rec := doRequest(t, handler, http.MethodPost, "/api/trades/", token, create)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created tradeResponse
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "ES", created.Symbol)
	assert.InDelta(t, 1000.0, created.PnL, 1e-9, "PnL derived server-side from the contract table")

	rec = doRequest(t, handler, http.MethodGet, "/api/trades/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []tradeResponse
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)

	update := map[string]interface{}{
		"date":       "2025-06-03T14:30:00Z",
		"symbol":     "ES",
		"side":       "long",
		"status":     "closed",
		"quantity":   2,
		"entryPrice": 4500.0,
		"exitPrice":  4520.0,
	}
	rec = doRequest(t, handler, http.MethodPut, "/api/trades/"+created.ID, token, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated tradeResponse
	decodeBody(t, rec, &updated)
	assert.InDelta(t, 2000.0, updated.PnL, 1e-9)

	rec = doRequest(t, handler, http.MethodDelete, "/api/trades/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/trades/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTradeValidationError(t *testing.T) {
	handler := setupTestServer(t)
	token := signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/trades/", token, map[string]interface{}{
		"date":       "2025-06-03T14:30:00Z",
		"symbol":     "ES",
		"side":       "sideways",
		"status":     "closed",
		"quantity":   1,
		"entryPrice": 4500.0,
		"exitPrice":  4510.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	handler := setupTestServer(t)
	token := signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodPost, "/api/trades/", token, map[string]interface{}{
		"date":       "2025-06-03T14:30:00Z",
		"symbol":     "ES",
		"side":       "long",
		"status":     "closed",
		"quantity":   1,
		"entryPrice": 4500.0,
		"exitPrice":  4510.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/summary?view=monthly&date=2025-06-03", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Period      string  `json:"period"`
		TotalTrades int     `json:"totalTrades"`
		TotalPnL    float64 `json:"totalPnL"`
	}
	decodeBody(t, rec, &summary)
	assert.Equal(t, "June 2025", summary.Period)
	assert.Equal(t, 1, summary.TotalTrades)
	assert.InDelta(t, 500.0, summary.TotalPnL, 1e-9)

	rec = doRequest(t, handler, http.MethodGet, "/api/summary?view=hourly", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/calendar?month=2025-06", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var calendar struct {
		Days []struct {
			TradeCount int `json:"tradeCount"`
		} `json:"days"`
	}
	decodeBody(t, rec, &calendar)
	assert.Len(t, calendar.Days, 35)

	rec = doRequest(t, handler, http.MethodGet, "/api/calendar", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/reports", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Metrics struct {
			TotalTrades int `json:"totalTrades"`
		} `json:"metrics"`
	}
	decodeBody(t, rec, &report)
	assert.Equal(t, 1, report.Metrics.TotalTrades)
}

func TestContractEndpoints(t *testing.T) {
	handler := setupTestServer(t)
	token := signupTestUser(t, handler)

	rec := doRequest(t, handler, http.MethodGet, "/api/contracts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var specs []contractResponse
	decodeBody(t, rec, &specs)
	assert.NotEmpty(t, specs)

	rec = doRequest(t, handler, http.MethodGet, "/api/contracts/ES", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var spec contractResponse
	decodeBody(t, rec, &spec)
	assert.Equal(t, "ES", spec.Symbol)
	assert.InDelta(t, 50.0, spec.PointValue, 1e-9)

	rec = doRequest(t, handler, http.MethodGet, "/api/contracts/XYZ", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
