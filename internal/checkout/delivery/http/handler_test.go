package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/checkout/domain"
	"github.com/tair/nutribakery/internal/checkout/usecase"
	orderdomain "github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

type stubCheckout struct {
	sessionReq usecase.SessionRequest
	codReq     usecase.CODRequest
	signature  string
	payload    string
	err        error
}

func (s *stubCheckout) CreateSession(_ context.Context, req usecase.SessionRequest) (*domain.Session, error) {
	s.sessionReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Session{ID: "cs_test_1"}, nil
}

func (s *stubCheckout) HandleConfirmation(_ context.Context, payload []byte, signature string) (*usecase.ConfirmationResult, error) {
	s.payload = string(payload)
	s.signature = signature
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.ConfirmationResult{EventID: "evt_1", State: domain.StatePaymentRecorded}, nil
}

func (s *stubCheckout) CashOnDelivery(_ context.Context, req usecase.CODRequest) (*usecase.CODResult, error) {
	s.codReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.CODResult{Order: &orderdomain.Order{OrderID: "NBO00001"}, State: domain.StatePaymentRecorded}, nil
}

func newRouter(t *testing.T, stub *stubCheckout) (*mux.Router, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("secret", time.Hour)
	router := mux.NewRouter()
	NewCheckoutHandler(stub, nil).RegisterRoutes(router, middleware.Guard{Authn: middleware.NewAuthenticator(tokens)})
	return router, tokens
}

func TestCashOnDeliveryOwnerFromTokenWins(t *testing.T) {
	stub := &stubCheckout{}
	router, tokens := newRouter(t, stub)
	token, err := tokens.GenerateToken("NBU_001", "alice", auth.RoleUser)
	require.NoError(t, err)

	body := `{"total_amount":2400,"ordered_items":[{"product_id":"NBP_001","quantity":2}],"user_details":{"user_id":"NBU_999"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/cod", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Idempotency-Key", "k-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "NBU_001", stub.codReq.OwnerID)
	assert.Equal(t, "k-1", stub.codReq.IdempotencyKey)
	assert.Equal(t, 2400.0, stub.codReq.Total)
	require.Len(t, stub.codReq.Items, 1)
	assert.EqualValues(t, "NBP_001", stub.codReq.Items[0].ProductID)
}

func TestCashOnDeliveryOwnerFromBody(t *testing.T) {
	stub := &stubCheckout{}
	router, _ := newRouter(t, stub)

	body := `{"total_amount":10,"ordered_items":[],"user_details":{"user_id":"NBU_002"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/payments/cod", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "NBU_002", stub.codReq.OwnerID)
}

func TestCashOnDeliveryErrorEnvelope(t *testing.T) {
	stub := &stubCheckout{err: apperr.Validation("User details are required.")}
	router, _ := newRouter(t, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/payments/cod", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp httpx.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "User details are required.", resp.Message)
}

func TestCreateSessionLegacyUserID(t *testing.T) {
	stub := &stubCheckout{}
	router, _ := newRouter(t, stub)

	body := `{"items":[{"product_id":"NBP_001","name":"Sourdough","price":1200,"quantity":1}],"total_amount":1200,"user_id":"NBU_003"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/payments/create-checkout-session", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NBU_003", stub.sessionReq.OwnerID)
	assert.Equal(t, 1200.0, stub.sessionReq.Total)
}

func TestWebhookPassesRawBodyAndSignature(t *testing.T) {
	stub := &stubCheckout{}
	router, _ := newRouter(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"id":"evt_1"}`, stub.payload)
	assert.Equal(t, "t=1,v1=abc", stub.signature)
}

func TestWebhookRejection(t *testing.T) {
	stub := &stubCheckout{err: apperr.New(apperr.KindValidation, "Webhook Error", nil)}
	router, _ := newRouter(t, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
