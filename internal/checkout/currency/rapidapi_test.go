package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/breaker"
)

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/currency/convert", r.URL.Path)
		assert.Equal(t, "LKR", r.URL.Query().Get("from"))
		assert.Equal(t, "USD", r.URL.Query().Get("to"))
		assert.Equal(t, "2700", r.URL.Query().Get("amount"))
		assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, DefaultHost, r.Header.Get("x-rapidapi-host"))
		_, _ = w.Write([]byte(`{"status":"success","rates":{"USD":{"rate":"0.0033","rate_for_amount":"8.9100"}}}`))
	}))
	defer srv.Close()

	c := NewRapidAPIConverter(Config{APIKey: "secret", BaseURL: srv.URL}, nil)
	got, err := c.Convert(context.Background(), 2700, "LKR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 8.91, got, 1e-9)
}

func TestConvertNumericRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"USD":{"rate":0.5,"rate_for_amount":5}}}`))
	}))
	defer srv.Close()

	got, err := NewRapidAPIConverter(Config{APIKey: "secret", BaseURL: srv.URL}, nil).Convert(context.Background(), 10, "LKR", "USD")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error", http.StatusInternalServerError, `oops`},
		{"missing rate", http.StatusOK, `{"rates":{"EUR":{"rate_for_amount":"1"}}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRapidAPIConverter(Config{APIKey: "secret", BaseURL: srv.URL}, nil).Convert(context.Background(), 10, "LKR", "USD")
			assert.Error(t, err)
		})
	}
}

func TestConvertWithoutKey(t *testing.T) {
	_, err := NewRapidAPIConverter(Config{}, nil).Convert(context.Background(), 10, "LKR", "USD")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestConvertOpensBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRapidAPIConverter(Config{APIKey: "secret", BaseURL: srv.URL}, breaker.New("currency", 2, time.Minute))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.Convert(ctx, 10, "LKR", "USD")
		assert.Error(t, err)
	}
	assert.Equal(t, 2, calls)

	_, err := c.Convert(ctx, 10, "LKR", "USD")
	assert.ErrorIs(t, err, breaker.ErrOpen)
}
