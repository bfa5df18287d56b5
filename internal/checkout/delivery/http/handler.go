package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/internal/checkout/domain"
	"github.com/tair/nutribakery/internal/checkout/usecase"
	ordercommand "github.com/tair/nutribakery/internal/order/usecase/command"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

const maxWebhookBody = 65536

// Checkout is the orchestrator surface the handler drives
type Checkout interface {
	CreateSession(ctx context.Context, req usecase.SessionRequest) (*domain.Session, error)
	HandleConfirmation(ctx context.Context, payload []byte, signature string) (*usecase.ConfirmationResult, error)
	CashOnDelivery(ctx context.Context, req usecase.CODRequest) (*usecase.CODResult, error)
}

type CheckoutHandler struct {
	checkout Checkout
	limiter  *middleware.RateLimiter
}

func NewCheckoutHandler(checkout Checkout, limiter *middleware.RateLimiter) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, limiter: limiter}
}

func (h *CheckoutHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/payments/create-checkout-session",
		g.Optional("/api/payments/create-checkout-session", h.limiter.Limit(h.CreateSession))).Methods("POST")
	router.HandleFunc("/api/payments/cod",
		g.Optional("/api/payments/cod", h.limiter.Limit(h.CashOnDelivery))).Methods("POST")
	router.HandleFunc("/api/payments/webhook", g.Public("/api/payments/webhook", h.Webhook)).Methods("POST")
}

type userDetails struct {
	UserID string `json:"user_id"`
}

// resolveOwner prefers the bearer identity over the body
func resolveOwner(r *http.Request, body *userDetails, legacy string) string {
	if id, ok := httpx.IdentityFromContext(r.Context()); ok {
		return id.UserID
	}
	if body != nil && body.UserID != "" {
		return body.UserID
	}
	return legacy
}

type createSessionRequest struct {
	Items       []domain.SessionItem `json:"items"`
	TotalAmount float64              `json:"total_amount"`
	SuccessURL  string               `json:"success_url"`
	CancelURL   string               `json:"cancel_url"`
	UserID      string               `json:"user_id"`
	UserDetails *userDetails         `json:"user_details"`
}

// CreateSession handles POST /api/payments/create-checkout-session
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	session, err := h.checkout.CreateSession(r.Context(), usecase.SessionRequest{
		OwnerID:    resolveOwner(r, req.UserDetails, req.UserID),
		Items:      req.Items,
		Total:      req.TotalAmount,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to create checkout session")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", session)
}

// Webhook handles POST /api/payments/webhook
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpx.RespondError(w, r, apperr.New(apperr.KindValidation, "Webhook Error", err), "Webhook Error")
		return
	}

	result, err := h.checkout.HandleConfirmation(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		httpx.RespondError(w, r, err, "Webhook Error")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "received", result)
}

type codRequest struct {
	TotalAmount  float64                 `json:"total_amount"`
	OrderedItems []ordercommand.LineItem `json:"ordered_items"`
	UserDetails  *userDetails            `json:"user_details"`
}

// CashOnDelivery handles POST /api/payments/cod
func (h *CheckoutHandler) CashOnDelivery(w http.ResponseWriter, r *http.Request) {
	var req codRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	result, err := h.checkout.CashOnDelivery(r.Context(), usecase.CODRequest{
		OwnerID:        resolveOwner(r, req.UserDetails, ""),
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		Total:          req.TotalAmount,
		Items:          req.OrderedItems,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to process COD order.")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Order and payment saved successfully for COD.", result)
}
