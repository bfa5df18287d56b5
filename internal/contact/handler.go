package contact

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// Handler handles HTTP requests for the contact form
type Handler struct {
	service *Service
	limiter *middleware.RateLimiter
}

func NewHandler(service *Service, limiter *middleware.RateLimiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

func (h *Handler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/contact", g.Public("/api/contact", h.limiter.Limit(h.Submit))).Methods("POST")
	router.HandleFunc("/api/contact/messages", g.Admin("/api/contact/messages", h.ListMessages)).Methods("GET")
	router.HandleFunc("/api/contact/recent", g.Admin("/api/contact/recent", h.RecentMessages)).Methods("GET")
	router.HandleFunc("/api/contact/messages/{id}/read", g.Admin("/api/contact/messages/{id}/read", h.MarkRead)).Methods("PATCH")
}

// Submit handles POST /api/contact
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	if _, err := h.service.Submit(r.Context(), req); err != nil {
		httpx.RespondError(w, r, err, "Failed to save message or send email")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Message saved and email sent successfully!", nil)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching messages")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", msgs)
}

func (h *Handler) RecentMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.Recent(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching messages")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", msgs)
}

// MarkRead handles PATCH /api/contact/messages/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, r, apperr.Validation("invalid message id"), "")
		return
	}

	if err := h.service.MarkRead(r.Context(), uint(id)); err != nil {
		httpx.RespondError(w, r, err, "Error updating message status")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Message marked as read", nil)
}
