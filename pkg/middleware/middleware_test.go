package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/httpx"
)

func identityEcho(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("X-User", id.UserID)
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	a := NewAuthenticator(tokens)

	userToken, err := tokens.GenerateToken("NBU_002", "bob", auth.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken("NBU_001", "alice", auth.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name    string
		wrap    func(http.HandlerFunc) http.HandlerFunc
		header  string
		status  int
		wantUID string
	}{
		{"auth missing header", a.Auth, "", http.StatusUnauthorized, ""},
		{"auth malformed header", a.Auth, "Token abc", http.StatusUnauthorized, ""},
		{"auth bad token", a.Auth, "Bearer nope", http.StatusUnauthorized, ""},
		{"auth ok", a.Auth, "Bearer " + userToken, http.StatusOK, "NBU_002"},
		{"admin with user role", a.Admin, "Bearer " + userToken, http.StatusForbidden, ""},
		{"admin ok", a.Admin, "Bearer " + adminToken, http.StatusOK, "NBU_001"},
		{"optional anonymous", a.Optional, "", http.StatusNoContent, ""},
		{"optional bad token", a.Optional, "Bearer nope", http.StatusNoContent, ""},
		{"optional ok", a.Optional, "Bearer " + userToken, http.StatusOK, "NBU_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.wrap(identityEcho)(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantUID, rec.Header().Get("X-User"))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRequestIDMiddleware(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	h := m.Wrap("/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCounter.WithLabelValues(http.MethodGet, "/api/products", "404")))
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	var rl *RateLimiter
	called := false
	rl.Limit(func(http.ResponseWriter, *http.Request) { called = true })(
		httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	assert.True(t, called)
}
