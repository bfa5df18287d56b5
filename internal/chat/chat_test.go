package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/breaker"
)

func TestOpenAIClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "Is the rye vegan?", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Yes, it is."}}]}`))
	}))
	defer srv.Close()

	svc := NewService(NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL}, nil))
	reply, err := svc.Ask(context.Background(), "Is the rye vegan?")
	require.NoError(t, err)
	assert.Equal(t, "Yes, it is.", reply.Reply)
}

func TestAskRequiresQuery(t *testing.T) {
	svc := NewService(NewOpenAIClient(OpenAIConfig{APIKey: "sk-test"}, nil))
	_, err := svc.Ask(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Query is required.", apperr.MessageOf(err, ""))
}

func TestAskMissingKeyIsServerError(t *testing.T) {
	svc := NewService(NewOpenAIClient(OpenAIConfig{}, nil))
	_, err := svc.Ask(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.HTTPStatus(err))
	assert.Equal(t, "OpenAI API Key is missing.", apperr.MessageOf(err, ""))
}

func TestAskUpstreamFailureOpensBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cb := breaker.New("openai", 2, time.Minute)
	svc := NewService(NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL}, cb))

	for i := 0; i < 3; i++ {
		_, err := svc.Ask(context.Background(), "hello")
		assert.True(t, apperr.Is(err, apperr.KindExternal))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, breaker.StateOpen, cb.State())
}
