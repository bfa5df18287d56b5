package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// CreateOrderCommand is a pre-built order carrying its own order ID
type CreateOrderCommand struct {
	OrderID       string
	UserID        string
	TotalAmount   float64
	PaymentMethod string
	Items         []LineItem
}

// CreateOrderHandler persists a client-built order. A taken order ID is reported, never retried.
type CreateOrderHandler struct {
	repo     domain.OrderRepository
	products domain.ProductResolver
}

func NewCreateOrderHandler(repo domain.OrderRepository, products domain.ProductResolver) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo, products: products}
}

func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if strings.TrimSpace(cmd.OrderID) == "" {
		return nil, apperr.Validation("orderID is required")
	}
	if cmd.UserID == "" {
		return nil, apperr.Unauthorized("user is required")
	}
	if !domain.ValidPaymentMethod(cmd.PaymentMethod) {
		return nil, apperr.Validation("unsupported payment method " + cmd.PaymentMethod)
	}

	items, err := resolveItems(ctx, h.products, cmd.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderID:       strings.TrimSpace(cmd.OrderID),
		UserID:        cmd.UserID,
		TotalAmount:   cmd.TotalAmount,
		PaymentMethod: cmd.PaymentMethod,
		Items:         items,
	}
	if err := h.repo.Create(ctx, order); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("Duplicate orderID detected. Please try again.", err)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}
