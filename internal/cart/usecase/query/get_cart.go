package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/nutribakery/internal/cart/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

var ErrCartEmpty = apperr.NotFound("Cart is empty")

// ItemView is a cart line joined with current catalog data
type ItemView struct {
	ProductID            productdomain.ProductID `json:"product_id"`
	Name                 string                  `json:"name"`
	Price                float64                 `json:"price"`
	ImageURL             string                  `json:"image_url"`
	Quantity             int                     `json:"quantity"`
	TotalPrice           float64                 `json:"total_price"`
	CustomizationOptions map[string]interface{}  `json:"customization_options,omitempty"`
	SubscriptionType     string                  `json:"subscription_type,omitempty"`
	DeliveryDay          string                  `json:"delivery_day,omitempty"`
}

type CartView struct {
	Items       []ItemView `json:"items"`
	TotalAmount float64    `json:"total_amount"`
}

type GetCartQuery struct {
	OwnerID string
}

type GetCartHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
}

func NewGetCartHandler(repo domain.CartRepository, catalog domain.Catalog) *GetCartHandler {
	return &GetCartHandler{repo: repo, catalog: catalog}
}

// Handle joins every line against the catalog. Lines whose product is gone are left out
// of the view but stay stored.
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*CartView, error) {
	cart, err := h.repo.FindByOwner(ctx, q.OwnerID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	view := &CartView{Items: make([]ItemView, 0, len(cart.Items)), TotalAmount: cart.TotalAmount}
	for _, item := range cart.Items {
		product, err := h.catalog.FindByProductID(ctx, item.ProductID)
		if err != nil {
			logger.Debug(ctx).
				Err(err).
				Str("product_id", string(item.ProductID)).
				Msg("Dropping unresolvable cart line from view")
			continue
		}
		lineTotal := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, ItemView{
			ProductID:            item.ProductID,
			Name:                 product.Name,
			Price:                product.Price,
			ImageURL:             product.ImageURL,
			Quantity:             item.Quantity,
			TotalPrice:           lineTotal.Round(2).InexactFloat64(),
			CustomizationOptions: item.CustomizationOptions,
			SubscriptionType:     item.SubscriptionType,
			DeliveryDay:          item.DeliveryDay,
		})
	}
	return view, nil
}
