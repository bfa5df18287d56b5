package query

import (
	"context"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// GetProductQuery represents the query to get a product by display ID
type GetProductQuery struct {
	ProductID domain.ProductID
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.ProductID == "" {
		return nil, apperr.Validation("product id is required")
	}
	return h.repo.FindByProductID(ctx, query.ProductID)
}

// ResolveRefHandler translates a display ID into the internal key
type ResolveRefHandler struct {
	repo domain.ProductRepository
}

func NewResolveRefHandler(repo domain.ProductRepository) *ResolveRefHandler {
	return &ResolveRefHandler{repo: repo}
}

// ResolveRef returns the internal key of the product with display ID id
func (h *ResolveRefHandler) ResolveRef(ctx context.Context, id domain.ProductID) (domain.ProductRef, error) {
	product, err := h.repo.FindByProductID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", apperr.NotFound("Product with ID " + string(id) + " not found")
		}
		return "", err
	}
	return product.Ref, nil
}
