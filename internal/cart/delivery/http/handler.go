package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/internal/cart/usecase/command"
	"github.com/tair/nutribakery/internal/cart/usecase/query"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// Reconciler runs post-payment cleanup; the checkout orchestrator implements it
type Reconciler interface {
	Reconcile(ctx context.Context, ownerID string, items []command.PurchasedItem) (*command.ReconcileReport, error)
}

// CartHandler serves the caller's own cart
type CartHandler struct {
	addHandler          *command.AddItemHandler
	quantityHandler     *command.UpdateQuantityHandler
	subscriptionHandler *command.UpdateSubscriptionHandler
	removeHandler       *command.RemoveItemHandler
	reconciler          Reconciler
	getHandler          *query.GetCartHandler
}

func NewCartHandler(
	addHandler *command.AddItemHandler,
	quantityHandler *command.UpdateQuantityHandler,
	subscriptionHandler *command.UpdateSubscriptionHandler,
	removeHandler *command.RemoveItemHandler,
	reconciler Reconciler,
	getHandler *query.GetCartHandler,
) *CartHandler {
	return &CartHandler{
		addHandler:          addHandler,
		quantityHandler:     quantityHandler,
		subscriptionHandler: subscriptionHandler,
		removeHandler:       removeHandler,
		reconciler:          reconciler,
		getHandler:          getHandler,
	}
}

func (h *CartHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/cart", g.User("/api/cart", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart", g.User("/api/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart/updateQuantity", g.User("/api/cart/updateQuantity", h.UpdateQuantity)).Methods("PUT")
	router.HandleFunc("/api/cart/updateSubscription", g.User("/api/cart/updateSubscription", h.UpdateSubscription)).Methods("PUT")
	router.HandleFunc("/api/cart/after-payment", g.User("/api/cart/after-payment", h.AfterPayment)).Methods("POST")
	router.HandleFunc("/api/cart/{productID}", g.User("/api/cart/{productID}", h.RemoveItem)).Methods("DELETE")
}

func ownerID(r *http.Request) string {
	id, _ := httpx.IdentityFromContext(r.Context())
	return id.UserID
}

func trimID(s string) productdomain.ProductID {
	return productdomain.ProductID(strings.TrimSpace(s))
}

type addItemRequest struct {
	ProductID            string                 `json:"product_id"`
	Quantity             int                    `json:"quantity"`
	CustomizationOptions map[string]interface{} `json:"customization_options"`
}

// AddItem handles POST /api/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	cart, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		OwnerID:              ownerID(r),
		ProductID:            trimID(req.ProductID),
		Quantity:             req.Quantity,
		CustomizationOptions: req.CustomizationOptions,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error adding to cart")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Product added to cart", cart)
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.getHandler.Handle(r.Context(), query.GetCartQuery{OwnerID: ownerID(r)})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching cart")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", view)
}

// UpdateQuantity handles PUT /api/cart/updateQuantity
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	cart, err := h.quantityHandler.Handle(r.Context(), command.UpdateQuantityCommand{
		OwnerID:   ownerID(r),
		ProductID: trimID(req.ProductID),
		Quantity:  req.Quantity,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating quantity")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Quantity updated", cart)
}

// UpdateSubscription handles PUT /api/cart/updateSubscription
func (h *CartHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID        string `json:"product_id"`
		SubscriptionType string `json:"subscription_type"`
		DeliveryDay      string `json:"delivery_day"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	cart, err := h.subscriptionHandler.Handle(r.Context(), command.UpdateSubscriptionCommand{
		OwnerID:          ownerID(r),
		ProductID:        trimID(req.ProductID),
		SubscriptionType: req.SubscriptionType,
		DeliveryDay:      req.DeliveryDay,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating subscription")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Subscription updated", cart)
}

// RemoveItem handles DELETE /api/cart/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		OwnerID:   ownerID(r),
		ProductID: trimID(mux.Vars(r)["productID"]),
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error removing product from cart")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Product removed from cart", cart)
}

// AfterPayment handles POST /api/cart/after-payment
func (h *CartHandler) AfterPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderedItems []command.PurchasedItem `json:"ordered_items"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}
	if len(req.OrderedItems) == 0 {
		httpx.RespondError(w, r, apperr.Validation("ordered_items is required"), "Invalid request body")
		return
	}

	report, err := h.reconciler.Reconcile(r.Context(), ownerID(r), req.OrderedItems)
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating cart and stock after payment")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Cart and stock updated after payment", report)
}
