package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// UpdateProductCommand is a partial update; nil fields are left untouched
type UpdateProductCommand struct {
	ProductID   domain.ProductID
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	ImageURL    *string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command. Status is re-derived only when stock is supplied.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ProductID == "" {
		return nil, apperr.Validation("product id is required")
	}

	product, err := h.repo.FindByProductID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		product.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		product.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperr.Validation("price must not be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Category != nil {
		product.Category = strings.TrimSpace(*cmd.Category)
	}
	if cmd.ImageURL != nil && *cmd.ImageURL != "" {
		product.ImageURL = *cmd.ImageURL
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, apperr.Validation("stock must not be negative")
		}
		product.SetStock(*cmd.Stock)
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
