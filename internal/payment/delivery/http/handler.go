package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/internal/payment/usecase/command"
	"github.com/tair/nutribakery/internal/payment/usecase/query"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// PaymentHandler handles HTTP requests for payment records using CQRS pattern
type PaymentHandler struct {
	// Command handlers
	updateStatusHandler *command.UpdateStatusHandler

	// Query handlers
	getHandler     *query.GetPaymentHandler
	listHandler    *query.ListPaymentsHandler
	getMyHandler   *query.GetMyPaymentsHandler
	revenueHandler *query.TotalRevenueHandler
}

// NewPaymentHandlerWithDI creates a new payment handler using dependency injection
func NewPaymentHandlerWithDI(
	updateStatusHandler *command.UpdateStatusHandler,
	getHandler *query.GetPaymentHandler,
	listHandler *query.ListPaymentsHandler,
	getMyHandler *query.GetMyPaymentsHandler,
	revenueHandler *query.TotalRevenueHandler,
) *PaymentHandler {
	return &PaymentHandler{
		updateStatusHandler: updateStatusHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		getMyHandler:        getMyHandler,
		revenueHandler:      revenueHandler,
	}
}

// RegisterRoutes registers all payment record routes
func (h *PaymentHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	// Authenticated user routes
	router.HandleFunc("/api/payments/my", g.User("/api/payments/my", h.GetMyPayments)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/payments/payments", g.Admin("/api/payments/payments", h.ListPayments)).Methods("GET")
	router.HandleFunc("/api/payments/payments/{id}", g.Admin("/api/payments/payments/{id}", h.GetPayment)).Methods("GET")
	router.HandleFunc("/api/payments/total-revenue", g.Admin("/api/payments/total-revenue", h.TotalRevenue)).Methods("GET")
	router.HandleFunc("/api/payments/{paymentID}/status", g.Admin("/api/payments/{paymentID}/status", h.UpdatePaymentStatus)).Methods("PATCH")
}

func paymentID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	if err != nil {
		return 0, apperr.Validation("Invalid payment ID")
	}
	return uint(id), nil
}

// GetPayment handles GET /api/payments/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := paymentID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid payment ID")
		return
	}

	payment, err := h.getHandler.Handle(r.Context(), query.GetPaymentQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching payment")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", payment)
}

// ListPayments handles GET /api/payments/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := httpx.Page(r, 10)

	payments, err := h.listHandler.Handle(r.Context(), query.ListPaymentsQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching payments")
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"payments": payments,
		"page":     page,
		"limit":    limit,
		"total":    len(payments),
	})
}

// TotalRevenue handles GET /api/payments/total-revenue
func (h *PaymentHandler) TotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.revenueHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching total revenue")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", map[string]float64{"total": total})
}

// UpdatePaymentStatus handles PATCH /api/payments/{paymentID}/status
func (h *PaymentHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := paymentID(r, "paymentID")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid payment ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	payment, err := h.updateStatusHandler.Handle(r.Context(), command.UpdateStatusCommand{PaymentID: id, Status: req.Status})
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating payment status")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Payment status updated successfully", payment)
}

// GetMyPayments handles GET /api/payments/my
func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, apperr.Unauthorized("Authentication required"), "Failed to get payments")
		return
	}
	page, limit, offset := httpx.Page(r, 10)

	payments, err := h.getMyHandler.Handle(r.Context(), query.GetMyPaymentsQuery{
		UserID: id.UserID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to get payments")
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"payments": payments,
		"page":     page,
		"limit":    limit,
		"total":    len(payments),
	})
}
