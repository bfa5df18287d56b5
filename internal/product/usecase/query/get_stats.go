package query

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/product/domain"
)

// ProductStats summarises the catalog for the admin dashboard
type ProductStats struct {
	TotalProducts      int64   `json:"total_products"`
	ActiveProducts     int64   `json:"active_products"`
	OutOfStockProducts int64   `json:"out_of_stock_products"`
	Specialties        int64   `json:"specialties"`
	TotalStock         int64   `json:"total_stock"`
	AveragePrice       float64 `json:"average_price"`
	TotalCategories    int64   `json:"total_categories"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context) (*ProductStats, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &ProductStats{TotalProducts: int64(len(products))}
	var totalPrice float64
	categories := make(map[string]bool)

	for _, p := range products {
		switch p.Status {
		case domain.StatusActive:
			stats.ActiveProducts++
		case domain.StatusOutOfStock:
			stats.OutOfStockProducts++
		}
		if p.IsSpecialty {
			stats.Specialties++
		}
		stats.TotalStock += int64(p.Stock)
		totalPrice += p.Price
		if p.Category != "" {
			categories[p.Category] = true
		}
	}

	if stats.TotalProducts > 0 {
		stats.AveragePrice = totalPrice / float64(stats.TotalProducts)
	}
	stats.TotalCategories = int64(len(categories))
	return stats, nil
}
