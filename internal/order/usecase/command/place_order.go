package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/order/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// LineItem is an ordered line as the client sends it, keyed by display ID
type LineItem struct {
	ProductID            productdomain.ProductID `json:"product_id"`
	Quantity             int                     `json:"quantity"`
	CustomizationOptions map[string]interface{}  `json:"customization_options,omitempty"`
	SubscriptionType     string                  `json:"subscription_type,omitempty"`
}

// PlaceOrderCommand creates an order under a freshly allocated ID
type PlaceOrderCommand struct {
	UserID        string
	TotalAmount   float64
	PaymentMethod string
	Items         []LineItem
}

// PlaceOrderHandler allocates an order ID and persists the order, re-allocating when a
// concurrent checkout took the same ID first
type PlaceOrderHandler struct {
	repo     domain.OrderRepository
	products domain.ProductResolver
	ids      *IDAllocator
	format   IDFormat
}

func NewPlaceOrderHandler(repo domain.OrderRepository, products domain.ProductResolver, ids *IDAllocator, format IDFormat) *PlaceOrderHandler {
	return &PlaceOrderHandler{repo: repo, products: products, ids: ids, format: format}
}

func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if strings.TrimSpace(cmd.UserID) == "" {
		return nil, apperr.Validation("userID is required.")
	}
	if !domain.ValidPaymentMethod(cmd.PaymentMethod) {
		return nil, apperr.Validation("unsupported payment method " + cmd.PaymentMethod)
	}

	items, err := resolveItems(ctx, h.products, cmd.Items)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		orderID, err := h.ids.Next(ctx, h.format)
		if err != nil {
			return nil, err
		}

		order := &domain.Order{
			OrderID:       orderID,
			UserID:        cmd.UserID,
			TotalAmount:   cmd.TotalAmount,
			PaymentMethod: cmd.PaymentMethod,
			Items:         cloneItems(items),
		}
		err = h.repo.Create(ctx, order)
		if err == nil {
			logger.Info(ctx).
				Str("order_id", order.OrderID).
				Str("user_id", order.UserID).
				Str("payment_method", order.PaymentMethod).
				Int("attempt", attempt).
				Msg("Order placed")
			return order, nil
		}
		if !apperr.Is(err, apperr.KindConflict) || attempt >= h.ids.maxAttempts {
			return nil, fmt.Errorf("failed to save order: %w", err)
		}

		logger.Warn(ctx).
			Str("order_id", orderID).
			Int("attempt", attempt).
			Msg("Order ID taken by a concurrent checkout, retrying")
	}
}

// resolveItems maps display IDs to catalog refs; any miss fails the whole order
func resolveItems(ctx context.Context, products domain.ProductResolver, in []LineItem) ([]domain.Item, error) {
	if len(in) == 0 {
		return nil, apperr.Validation("ordered items are required")
	}

	items := make([]domain.Item, 0, len(in))
	for _, li := range in {
		if li.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be greater than 0 for " + string(li.ProductID))
		}
		ref, err := products.ResolveRef(ctx, li.ProductID)
		if err != nil {
			return nil, err
		}

		custom := li.CustomizationOptions
		if custom == nil {
			custom = map[string]interface{}{}
		}
		subscription := li.SubscriptionType
		if subscription == "" {
			subscription = domain.DefaultSubscriptionType
		}

		items = append(items, domain.Item{
			ProductRef:           ref,
			ProductID:            li.ProductID,
			Quantity:             li.Quantity,
			CustomizationOptions: custom,
			SubscriptionType:     subscription,
		})
	}
	return items, nil
}

// cloneItems gives each insert attempt fresh rows; gorm writes primary keys back into the slice
func cloneItems(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].ID = 0
		out[i].OrderRowID = 0
	}
	return out
}
