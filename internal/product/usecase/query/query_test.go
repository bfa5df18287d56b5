package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/internal/product/producttest"
	"github.com/tair/nutribakery/pkg/apperr"
)

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	cake := producttest.Product("NBP_002", "Cake", 3000, 0)
	cake.Category = "Cakes"
	cake.IsSpecialty = true
	repo := producttest.NewRepository(producttest.Product("NBP_001", "Rye", 500, 3), cake)
	h := NewListProductsHandler(repo)

	all, err := h.Handle(ctx, ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cakes, err := h.Handle(ctx, ListProductsQuery{Category: "  cakes "})
	require.NoError(t, err)
	require.Len(t, cakes, 1)
	assert.Equal(t, domain.ProductID("NBP_002"), cakes[0].ProductID)

	none, err := h.Handle(ctx, ListProductsQuery{Category: "pies"})
	require.NoError(t, err)
	assert.Empty(t, none)

	special, err := h.Handle(ctx, ListProductsQuery{SpecialtiesOnly: true})
	require.NoError(t, err)
	assert.Len(t, special, 1)
}

func TestListSpecialtiesEmptyIsNotFound(t *testing.T) {
	repo := producttest.NewRepository(producttest.Product("NBP_001", "Rye", 500, 3))
	_, err := NewListProductsHandler(repo).Handle(context.Background(), ListProductsQuery{SpecialtiesOnly: true})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestResolveRef(t *testing.T) {
	ctx := context.Background()
	rye := producttest.Product("NBP_001", "Rye", 500, 3)
	h := NewResolveRefHandler(producttest.NewRepository(rye))

	ref, err := h.ResolveRef(ctx, "NBP_001")
	require.NoError(t, err)
	assert.Equal(t, rye.Ref, ref)

	_, err = h.ResolveRef(ctx, "NBP_999")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "NBP_999")
}

func TestGetStats(t *testing.T) {
	repo := producttest.NewRepository(
		producttest.Product("NBP_001", "Rye", 500, 3),
		producttest.Product("NBP_002", "Bagel", 300, 0),
	)
	stats, err := NewGetStatsHandler(repo).Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.ActiveProducts)
	assert.Equal(t, int64(1), stats.OutOfStockProducts)
	assert.Equal(t, 400.0, stats.AveragePrice)
}
