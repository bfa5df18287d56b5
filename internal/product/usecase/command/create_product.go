package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/product/domain"
	sequencedomain "github.com/tair/nutribakery/internal/sequence/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// IDAllocator hands out display IDs for a prefix
type IDAllocator interface {
	Allocate(ctx context.Context, prefix string) (string, error)
}

// CreateProductCommand represents the command to create a product.
// Price and Stock are pointers so an explicit zero differs from a missing field.
type CreateProductCommand struct {
	Name        string
	Description string
	Price       *float64
	Stock       *int
	Category    string
	ImageURL    string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
	ids  IDAllocator
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, ids IDAllocator) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, ids: ids}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if strings.TrimSpace(cmd.Name) == "" || strings.TrimSpace(cmd.Description) == "" ||
		strings.TrimSpace(cmd.Category) == "" || cmd.ImageURL == "" ||
		cmd.Price == nil || cmd.Stock == nil {
		return nil, apperr.Validation("All fields are required")
	}
	if *cmd.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if *cmd.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}

	displayID, err := h.ids.Allocate(ctx, sequencedomain.PrefixProduct)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ProductID:   domain.ProductID(displayID),
		Ref:         domain.NewProductRef(),
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Price:       *cmd.Price,
		Category:    strings.TrimSpace(cmd.Category),
		ImageURL:    cmd.ImageURL,
	}
	product.SetStock(*cmd.Stock)

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
