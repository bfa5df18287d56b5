package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/product/domain"
)

type ToggleSpecialtyCommand struct {
	ProductID domain.ProductID
}

type ToggleSpecialtyHandler struct {
	repo domain.ProductRepository
}

func NewToggleSpecialtyHandler(repo domain.ProductRepository) *ToggleSpecialtyHandler {
	return &ToggleSpecialtyHandler{repo: repo}
}

// Handle flips the specialty flag
func (h *ToggleSpecialtyHandler) Handle(ctx context.Context, cmd ToggleSpecialtyCommand) (*domain.Product, error) {
	product, err := h.repo.FindByProductID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	product.IsSpecialty = !product.IsSpecialty
	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update specialty status: %w", err)
	}
	return product, nil
}
