package chat

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// Handler handles HTTP requests for the chat assistant
type Handler struct {
	service *Service
	limiter *middleware.RateLimiter
}

func NewHandler(service *Service, limiter *middleware.RateLimiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

func (h *Handler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/chat", g.Public("/api/chat", h.limiter.Limit(h.Ask))).Methods("POST")
}

// Ask handles POST /api/chat
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	reply, err := h.service.Ask(r.Context(), req.Query)
	if err != nil {
		httpx.RespondError(w, r, err, "Error communicating with OpenAI.")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", reply)
}
