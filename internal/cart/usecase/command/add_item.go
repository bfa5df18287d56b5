package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/cart/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// AddItemCommand adds a product to the owner's cart. Quantity 0 means 1.
type AddItemCommand struct {
	OwnerID              string
	ProductID            productdomain.ProductID
	Quantity             int
	CustomizationOptions map[string]interface{}
}

// AddItemHandler handles add to cart
type AddItemHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
}

func NewAddItemHandler(repo domain.CartRepository, catalog domain.Catalog) *AddItemHandler {
	return &AddItemHandler{repo: repo, catalog: catalog}
}

// Handle creates the cart on first use and recomputes the total
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.Cart, error) {
	if cmd.OwnerID == "" {
		return nil, apperr.Unauthorized("user is required")
	}
	if cmd.ProductID == "" {
		return nil, apperr.Validation("product id is required")
	}
	if cmd.Quantity < 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}
	if cmd.Quantity == 0 {
		cmd.Quantity = 1
	}

	cart, err := h.repo.FindByOwner(ctx, cmd.OwnerID)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		cart = &domain.Cart{OwnerID: cmd.OwnerID}
	case err != nil:
		return nil, err
	}

	cart.AddItem(cmd.ProductID, cmd.Quantity, cmd.CustomizationOptions)
	recomputeTotal(ctx, h.catalog, cart)

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}
