package blog

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// ImageStore saves an optional uploaded image
type ImageStore interface {
	SaveImage(r *http.Request, field string) (url string, ok bool, err error)
}

// Handler handles HTTP requests for blog posts
type Handler struct {
	service *Service
	images  ImageStore
}

// NewHandler creates a new blog handler
func NewHandler(service *Service, images ImageStore) *Handler {
	return &Handler{service: service, images: images}
}

func (h *Handler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/blogs", g.Public("/api/blogs", h.ListBlogs)).Methods("GET")
	router.HandleFunc("/api/blogs", g.Public("/api/blogs", h.CreateBlog)).Methods("POST")
	router.HandleFunc("/api/blogs/{id}", g.Public("/api/blogs/{id}", h.GetBlog)).Methods("GET")
}

// ListBlogs handles GET /api/blogs
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.GetAllBlogs(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Internal Server Error")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", blogs)
}

// GetBlog handles GET /api/blogs/{id}
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, r, apperr.Validation("Invalid blog ID"), "")
		return
	}

	blog, err := h.service.GetBlog(r.Context(), uint(id))
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching the blog post")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", blog)
}

// CreateBlog handles POST /api/blogs
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	imageURL, _, err := h.images.SaveImage(r, "image")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid upload")
		return
	}

	blog, err := h.service.CreateBlog(r.Context(), CreateBlogRequest{
		Title:    r.FormValue("title"),
		Excerpt:  r.FormValue("excerpt"),
		Content:  r.FormValue("content"),
		ImageURL: imageURL,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Internal Server Error")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Blog post created", blog)
}
