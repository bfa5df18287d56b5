package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/apperr"
)

func TestRespondErrorUsesKindStatusAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)

	RespondError(rec, req, apperr.NotFound("Product not found"), "Error fetching product")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Product not found", resp.Message)
}

func TestRespondErrorFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)

	RespondError(rec, req, errors.New("boom"), "Something failed")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Something failed", resp.Message)
	assert.Equal(t, "boom", resp.Error)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"rye"}`)), &dst)
	require.NoError(t, err)
	assert.Equal(t, "rye", dst.Name)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dst)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &dst)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestIdentityRequiresUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)

	ctx := ContextWithIdentity(req.Context(), Identity{Role: "admin"})
	_, ok = IdentityFromContext(ctx)
	assert.False(t, ok)

	ctx = ContextWithIdentity(req.Context(), Identity{UserID: "NBU_001", Role: "admin"})
	id, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "NBU_001", id.UserID)
}

func TestPage(t *testing.T) {
	tests := []struct {
		query               string
		page, limit, offset int
	}{
		{"", 1, 20, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=-1&limit=500", 1, 100, 0},
		{"page=x&limit=y", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, limit, offset := Page(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil), 20)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
