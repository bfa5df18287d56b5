package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/internal/order/usecase/command"
	"github.com/tair/nutribakery/internal/order/usecase/query"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	createHandler *command.CreateOrderHandler
	listHandler   *query.ListOrdersHandler
	nextIDHandler *query.NextIDHandler
}

func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	listHandler *query.ListOrdersHandler,
	nextIDHandler *query.NextIDHandler,
) *OrderHandler {
	return &OrderHandler{
		createHandler: createHandler,
		listHandler:   listHandler,
		nextIDHandler: nextIDHandler,
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/orders/custom-id", g.Public("/api/orders/custom-id", h.CustomID)).Methods("GET")
	router.HandleFunc("/api/orders/orders-and-payments", g.User("/api/orders/orders-and-payments", h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders/my", g.User("/api/orders/my", h.MyOrders)).Methods("GET")
	router.HandleFunc("/api/orders", g.Admin("/api/orders", h.ListOrders)).Methods("GET")
}

// CustomID handles GET /api/orders/custom-id?prefix=
func (h *OrderHandler) CustomID(w http.ResponseWriter, r *http.Request) {
	id, err := h.nextIDHandler.Handle(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to generate custom ID.")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", map[string]string{"custom_id": id})
}

type createOrderRequest struct {
	OrderID       string             `json:"order_id"`
	TotalAmount   float64            `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	OrderedItems  []command.LineItem `json:"ordered_items"`
}

// CreateOrder handles POST /api/orders/orders-and-payments
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	id, _ := httpx.IdentityFromContext(r.Context())
	order, err := h.createHandler.Handle(r.Context(), command.CreateOrderCommand{
		OrderID:       req.OrderID,
		UserID:        id.UserID,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		Items:         req.OrderedItems,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to create order.")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Order created successfully", order)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching orders.")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", views)
}

// MyOrders handles GET /api/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, apperr.Unauthorized("Authentication required"), "Error fetching orders.")
		return
	}
	views, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{UserID: id.UserID})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching orders.")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", views)
}
