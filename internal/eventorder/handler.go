package eventorder

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

const (
	fieldImages        = "images"
	fieldProductImages = "products[image]"
)

// ImageStore saves multipart image uploads
type ImageStore interface {
	SaveImages(r *http.Request, field string, max int) ([]string, error)
}

// Handler handles HTTP requests for event orders
type Handler struct {
	service *Service
	images  ImageStore
}

func NewHandler(service *Service, images ImageStore) *Handler {
	return &Handler{service: service, images: images}
}

func (h *Handler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/eventorder/eventorder", g.Public("/api/eventorder/eventorder", h.Create)).Methods("POST")
	router.HandleFunc("/api/eventorder", g.Admin("/api/eventorder", h.List)).Methods("GET")
	router.HandleFunc("/api/eventorder/{id}/payment", g.Admin("/api/eventorder/{id}/payment", h.SetPayment)).Methods("PATCH")
	router.HandleFunc("/api/eventorder/{id}/delivery", g.Admin("/api/eventorder/{id}/delivery", h.SetDelivery)).Methods("PATCH")
}

// Create handles POST /api/eventorder/eventorder
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	images, err := h.images.SaveImages(r, fieldImages, MaxImages)
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid upload")
		return
	}
	productImages, err := h.images.SaveImages(r, fieldProductImages, MaxImages)
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid upload")
		return
	}

	var products []Product
	if raw := r.FormValue("products"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &products); err != nil {
			httpx.RespondError(w, r, apperr.New(apperr.KindValidation, "products must be a JSON list", err), "")
			return
		}
	}

	order, err := h.service.Create(r.Context(), CreateRequest{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		EventType:     r.FormValue("eventType"),
		Instructions:  r.FormValue("instructions"),
		Date:          r.FormValue("date"),
		Products:      products,
		ProductImages: productImages,
		Images:        images,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to save event order")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Custom event order saved and email sent successfully", order)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAll(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to retrieve event orders")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", orders)
}

type statusSetter func(ctx context.Context, id uint, status string) (*EventOrder, error)

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetPayment(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.SetPaymentStatus, "Failed to update payment status")
}

func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.SetDeliveryStatus, "Failed to update delivery status")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, set statusSetter, fallback string) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, r, apperr.Validation("invalid event order id"), "")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	order, err := set(r.Context(), uint(id), req.Status)
	if err != nil {
		httpx.RespondError(w, r, err, fallback)
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", order)
}
