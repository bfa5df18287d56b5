package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"conflict", Conflict("dup", nil), http.StatusConflict},
		{"external", External("rates", errors.New("timeout")), http.StatusBadGateway},
		{"storage", Storage("db", errors.New("down")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("gone")), http.StatusNotFound},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinel := NotFound("cart is empty")
	err := fmt.Errorf("get cart: %w", NotFound("cart is empty"))

	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(err, NotFound("product not found")))
	assert.True(t, Is(err, KindNotFound))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("error generating unique ID", cause)

	assert.Equal(t, "error generating unique ID: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error generating unique ID", MessageOf(err, "fallback"))
	assert.Equal(t, "fallback", MessageOf(cause, "fallback"))
}
