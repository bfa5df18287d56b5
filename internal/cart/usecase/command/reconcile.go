package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/cart/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// PurchasedItem is one paid line
type PurchasedItem struct {
	ProductID productdomain.ProductID `json:"product_id"`
	Quantity  int                     `json:"quantity"`
}

type ReconcileCommand struct {
	OwnerID string
	Items   []PurchasedItem
}

// StockUpdate is the stock level after a successful decrement
type StockUpdate struct {
	ProductID productdomain.ProductID `json:"product_id"`
	Stock     int                     `json:"stock"`
	Status    string                  `json:"status"`
}

// StockFailure records a decrement that did not happen
type StockFailure struct {
	ProductID productdomain.ProductID `json:"product_id"`
	Reason    string                  `json:"reason"`
}

// ReconcileReport lists the outcome of every purchased item
type ReconcileReport struct {
	RemovedLines  []productdomain.ProductID `json:"removed_lines"`
	MissingLines  []productdomain.ProductID `json:"missing_lines"`
	StockUpdates  []StockUpdate             `json:"stock_updates"`
	StockFailures []StockFailure            `json:"stock_failures"`
}

// ReconcileHandler removes purchased lines from the cart and decrements stock
type ReconcileHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
	stock   domain.StockKeeper
}

func NewReconcileHandler(repo domain.CartRepository, catalog domain.Catalog, stock domain.StockKeeper) *ReconcileHandler {
	return &ReconcileHandler{repo: repo, catalog: catalog, stock: stock}
}

// Handle is best effort per item: missing lines and failed decrements are collected, not returned as errors.
// A missing cart fails the whole call before any stock changes.
func (h *ReconcileHandler) Handle(ctx context.Context, cmd ReconcileCommand) (*ReconcileReport, error) {
	cart, err := h.repo.FindByOwner(ctx, cmd.OwnerID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{
		RemovedLines:  []productdomain.ProductID{},
		MissingLines:  []productdomain.ProductID{},
		StockUpdates:  []StockUpdate{},
		StockFailures: []StockFailure{},
	}

	for _, item := range cmd.Items {
		if cart.RemoveItem(item.ProductID) {
			report.RemovedLines = append(report.RemovedLines, item.ProductID)
			continue
		}
		logger.Warn(ctx).
			Str("owner_id", cmd.OwnerID).
			Str("product_id", string(item.ProductID)).
			Msg("Purchased product not found in cart")
		report.MissingLines = append(report.MissingLines, item.ProductID)
	}

	recomputeTotal(ctx, h.catalog, cart)
	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to update cart after payment: %w", err)
	}

	for _, item := range cmd.Items {
		product, err := h.stock.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("product_id", string(item.ProductID)).
				Int("quantity", item.Quantity).
				Msg("Failed to reduce stock after payment")
			report.StockFailures = append(report.StockFailures, StockFailure{
				ProductID: item.ProductID,
				Reason:    apperr.MessageOf(err, err.Error()),
			})
			continue
		}
		report.StockUpdates = append(report.StockUpdates, StockUpdate{
			ProductID: product.ProductID,
			Stock:     product.Stock,
			Status:    product.Status,
		})
	}

	logger.Info(ctx).
		Str("owner_id", cmd.OwnerID).
		Int("removed", len(report.RemovedLines)).
		Int("missing", len(report.MissingLines)).
		Int("stock_failures", len(report.StockFailures)).
		Msg("Cart reconciled after payment")

	return report, nil
}
