package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/nutribakery/internal/cart/domain"
	"github.com/tair/nutribakery/pkg/logger"
)

// recomputeTotal sums quantity x current price over lines whose product still resolves.
// Unresolvable lines stay in the cart but do not count.
func recomputeTotal(ctx context.Context, catalog domain.Catalog, cart *domain.Cart) {
	total := decimal.Zero
	for _, item := range cart.Items {
		product, err := catalog.FindByProductID(ctx, item.ProductID)
		if err != nil {
			logger.Debug(ctx).
				Err(err).
				Str("owner_id", cart.OwnerID).
				Str("product_id", string(item.ProductID)).
				Msg("Skipping unresolvable cart line in total")
			continue
		}
		total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.TotalAmount = total.Round(2).InexactFloat64()
}
