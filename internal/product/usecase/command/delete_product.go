package command

import (
	"context"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ProductID domain.ProductID
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command. Existing order lines keep their
// reference and render as unknown afterwards.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ProductID == "" {
		return apperr.Validation("product id is required")
	}
	return h.repo.Delete(ctx, cmd.ProductID)
}
