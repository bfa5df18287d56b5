package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/internal/product/usecase/command"
	"github.com/tair/nutribakery/internal/product/usecase/query"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/middleware"
	"github.com/tair/nutribakery/pkg/upload"
)

// ImageStore persists uploaded product images
type ImageStore interface {
	SaveImage(r *http.Request, field string) (url string, ok bool, err error)
}

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler          *command.CreateProductHandler
	updateHandler          *command.UpdateProductHandler
	deleteHandler          *command.DeleteProductHandler
	updateStockHandler     *command.UpdateStockHandler
	toggleSpecialtyHandler *command.ToggleSpecialtyHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	images        ImageStore
	totalProducts prometheus.Gauge
}

// NewProductHandlerWithDI creates a new product handler using dependency injection
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	toggleSpecialtyHandler *command.ToggleSpecialtyHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
	images ImageStore,
	reg prometheus.Registerer,
) *ProductHandler {
	totalProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nutribakery",
		Name:      "catalog_products",
		Help:      "Number of products in the catalog after the last catalog mutation",
	})
	reg.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:          createHandler,
		updateHandler:          updateHandler,
		deleteHandler:          deleteHandler,
		updateStockHandler:     updateStockHandler,
		toggleSpecialtyHandler: toggleSpecialtyHandler,
		getProductHandler:      getProductHandler,
		listHandler:            listHandler,
		statsHandler:           statsHandler,
		images:                 images,
		totalProducts:          totalProducts,
	}
}

// RegisterRoutes registers product routes. Literal paths come before {id}.
func (h *ProductHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/products", g.Public("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/specialties", g.Public("/api/products/specialties", h.ListSpecialties)).Methods("GET")
	router.HandleFunc("/api/products/stats", g.Admin("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/category/{category}", g.Public("/api/products/category/{category}", h.ListByCategory)).Methods("GET")
	router.HandleFunc("/api/products/{id}", g.Public("/api/products/{id}", h.GetProduct)).Methods("GET")

	router.HandleFunc("/api/products", g.Admin("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", g.Admin("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", g.Admin("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/specialty", g.Admin("/api/products/{id}/specialty", h.ToggleSpecialty)).Methods("PUT")
	router.HandleFunc("/api/products/{id}/update-stock", g.Admin("/api/products/{id}/update-stock", h.UpdateStock)).Methods("PUT")
}

func productID(r *http.Request) domain.ProductID {
	return domain.ProductID(strings.TrimSpace(mux.Vars(r)["id"]))
}

// formFloat returns nil when the field is absent
func formFloat(r *http.Request, field string) (*float64, error) {
	raw, ok := r.MultipartForm.Value[field]
	if !ok || len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw[0]), 64)
	if err != nil {
		return nil, apperr.Validation(field + " must be a number")
	}
	return &v, nil
}

func formInt(r *http.Request, field string) (*int, error) {
	raw, ok := r.MultipartForm.Value[field]
	if !ok || len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw[0]))
	if err != nil {
		return nil, apperr.Validation(field + " must be an integer")
	}
	return &v, nil
}

func formString(r *http.Request, field string) *string {
	raw, ok := r.MultipartForm.Value[field]
	if !ok || len(raw) == 0 {
		return nil
	}
	return &raw[0]
}

func (h *ProductHandler) refreshGauge(ctx context.Context) {
	stats, err := h.statsHandler.Handle(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to refresh catalog gauge")
		return
	}
	h.totalProducts.Set(float64(stats.TotalProducts))
}

// CreateProduct handles POST /api/products (multipart)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(r); err != nil {
		httpx.RespondError(w, r, err, "Invalid product form")
		return
	}

	price, err := formFloat(r, "price")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid price")
		return
	}
	stock, err := formInt(r, "stock")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid stock")
		return
	}

	imageURL, ok, err := h.images.SaveImage(r, "image")
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to store product image")
		return
	}
	if !ok {
		httpx.RespondError(w, r, apperr.Validation("All fields are required"), "Product image is required")
		return
	}

	cmd := command.CreateProductCommand{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Category:    r.FormValue("category"),
		ImageURL:    imageURL,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to create product")
		return
	}

	logger.Info(r.Context()).
		Str("product_id", string(product.ProductID)).
		Str("status", product.Status).
		Msg("Product created")
	h.refreshGauge(r.Context())

	httpx.RespondOK(w, http.StatusCreated, "Product created successfully", product)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to list products")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", products)
}

// ListByCategory handles GET /api/products/category/{category}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Category: mux.Vars(r)["category"]})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to list products by category")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", products)
}

// ListSpecialties handles GET /api/products/specialties
func (h *ProductHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{SpecialtiesOnly: true})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to list specialties")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ProductID: productID(r)})
	if err != nil {
		httpx.RespondError(w, r, err, "Product not found")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", product)
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to get product stats")
		return
	}
	h.totalProducts.Set(float64(stats.TotalProducts))
	httpx.RespondOK(w, http.StatusOK, "", stats)
}

// UpdateProduct handles PUT /api/products/{id} (multipart, every field optional)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(r); err != nil {
		httpx.RespondError(w, r, err, "Invalid product form")
		return
	}

	price, err := formFloat(r, "price")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid price")
		return
	}
	stock, err := formInt(r, "stock")
	if err != nil {
		httpx.RespondError(w, r, err, "Invalid stock")
		return
	}

	cmd := command.UpdateProductCommand{
		ProductID:   productID(r),
		Name:        formString(r, "name"),
		Description: formString(r, "description"),
		Category:    formString(r, "category"),
		Price:       price,
		Stock:       stock,
	}

	imageURL, ok, err := h.images.SaveImage(r, "image")
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to store product image")
		return
	}
	if ok {
		cmd.ImageURL = &imageURL
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to update product")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ProductID: productID(r)}); err != nil {
		httpx.RespondError(w, r, err, "Failed to delete product")
		return
	}
	h.refreshGauge(r.Context())
	httpx.RespondOK(w, http.StatusOK, "Product deleted successfully", nil)
}

// ToggleSpecialty handles PUT /api/products/{id}/specialty
func (h *ProductHandler) ToggleSpecialty(w http.ResponseWriter, r *http.Request) {
	product, err := h.toggleSpecialtyHandler.Handle(r.Context(), command.ToggleSpecialtyCommand{ProductID: productID(r)})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to update specialty status")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Specialty status updated", product)
}

// UpdateStock handles PUT /api/products/{id}/update-stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stock *int `json:"stock"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	product, err := h.updateStockHandler.Handle(r.Context(), command.UpdateStockCommand{
		ProductID: productID(r),
		Stock:     req.Stock,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Failed to update stock")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Stock updated successfully", product)
}
