package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// UpdateStockCommand sets an absolute stock level
type UpdateStockCommand struct {
	ProductID domain.ProductID
	Stock     *int
}

// UpdateStockHandler handles stock assignment
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) (*domain.Product, error) {
	if cmd.Stock == nil {
		return nil, apperr.Validation("Stock value is required")
	}
	if *cmd.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}

	product, err := h.repo.FindByProductID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	product.SetStock(*cmd.Stock)
	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return product, nil
}

// DecrementStockHandler subtracts sold quantities, never going below zero
type DecrementStockHandler struct {
	repo domain.ProductRepository
}

// NewDecrementStockHandler creates a new decrement stock handler
func NewDecrementStockHandler(repo domain.ProductRepository) *DecrementStockHandler {
	return &DecrementStockHandler{repo: repo}
}

// DecrementStock lowers the stock of id by qty
func (h *DecrementStockHandler) DecrementStock(ctx context.Context, id domain.ProductID, qty int) (*domain.Product, error) {
	if qty <= 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}
	return h.repo.DecrementStock(ctx, id, qty)
}
