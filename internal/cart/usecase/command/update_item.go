package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/cart/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

var (
	ErrCartNotFound = apperr.NotFound("Cart not found")
	ErrItemNotFound = apperr.NotFound("Product not found in cart")
)

// loadLine fetches the owner's cart and the index of the product line
func loadLine(ctx context.Context, repo domain.CartRepository, ownerID string, id productdomain.ProductID) (*domain.Cart, int, error) {
	cart, err := repo.FindByOwner(ctx, ownerID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, -1, ErrCartNotFound
	}
	if err != nil {
		return nil, -1, err
	}
	i := cart.FindItem(id)
	if i < 0 {
		return nil, -1, ErrItemNotFound
	}
	return cart, i, nil
}

type UpdateQuantityCommand struct {
	OwnerID   string
	ProductID productdomain.ProductID
	Quantity  int
}

type UpdateQuantityHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
}

func NewUpdateQuantityHandler(repo domain.CartRepository, catalog domain.Catalog) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{repo: repo, catalog: catalog}
}

// Handle sets the line quantity and recomputes the total
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Cart, error) {
	if cmd.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}

	cart, i, err := loadLine(ctx, h.repo, cmd.OwnerID, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	cart.Items[i].Quantity = cmd.Quantity
	recomputeTotal(ctx, h.catalog, cart)

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return cart, nil
}

type UpdateSubscriptionCommand struct {
	OwnerID          string
	ProductID        productdomain.ProductID
	SubscriptionType string
	DeliveryDay      string
}

type UpdateSubscriptionHandler struct {
	repo domain.CartRepository
}

func NewUpdateSubscriptionHandler(repo domain.CartRepository) *UpdateSubscriptionHandler {
	return &UpdateSubscriptionHandler{repo: repo}
}

// Handle sets subscription fields on a line; prices are unaffected so the total is kept
func (h *UpdateSubscriptionHandler) Handle(ctx context.Context, cmd UpdateSubscriptionCommand) (*domain.Cart, error) {
	cart, i, err := loadLine(ctx, h.repo, cmd.OwnerID, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	cart.Items[i].SubscriptionType = cmd.SubscriptionType
	cart.Items[i].DeliveryDay = cmd.DeliveryDay

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return cart, nil
}

type RemoveItemCommand struct {
	OwnerID   string
	ProductID productdomain.ProductID
}

type RemoveItemHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
}

func NewRemoveItemHandler(repo domain.CartRepository, catalog domain.Catalog) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo, catalog: catalog}
}

// Handle removes the line and recomputes the total. Removing twice yields ErrItemNotFound.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Cart, error) {
	cart, _, err := loadLine(ctx, h.repo, cmd.OwnerID, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(cmd.ProductID)
	recomputeTotal(ctx, h.catalog, cart)

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return cart, nil
}
