package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Category        string // optional, case-insensitive exact match
	SpecialtiesOnly bool
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)

	switch {
	case query.SpecialtiesOnly:
		products, err = h.repo.FindSpecialties(ctx)
		if err == nil && len(products) == 0 {
			return nil, apperr.NotFound("No specialties found")
		}
	case strings.TrimSpace(query.Category) != "":
		products, err = h.repo.FindByCategory(ctx, strings.TrimSpace(query.Category))
	default:
		products, err = h.repo.FindAll(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
