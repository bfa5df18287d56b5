package review

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// Handler handles HTTP requests for reviews
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/review/reviews", g.Public("/api/review/reviews", h.ListReviews)).Methods("GET")
	router.HandleFunc("/api/review/reviews", g.Public("/api/review/reviews", h.CreateReview)).Methods("POST")
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAllReviews(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching reviews")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", reviews)
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	review, err := h.service.CreateReview(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, err, "Error creating review")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Review created", review)
}
