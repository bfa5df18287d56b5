package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/cart/carttest"
	"github.com/tair/nutribakery/internal/cart/domain"
	"github.com/tair/nutribakery/internal/product/producttest"
)

func TestGetCartJoinsCatalog(t *testing.T) {
	catalog := producttest.NewRepository(producttest.Product("NBP_001", "Sourdough", 10, 5))
	repo := carttest.NewRepository(domain.Cart{
		OwnerID:     "NBU_001",
		TotalAmount: 30,
		Items: []domain.Item{
			{ProductID: "NBP_001", Quantity: 3, SubscriptionType: "weekly"},
			{ProductID: "NBP_009", Quantity: 1},
		},
	})

	view, err := NewGetCartHandler(repo, catalog).Handle(context.Background(), GetCartQuery{OwnerID: "NBU_001"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Sourdough", view.Items[0].Name)
	assert.Equal(t, 30.0, view.Items[0].TotalPrice)
	assert.Equal(t, "weekly", view.Items[0].SubscriptionType)
	assert.Equal(t, 30.0, view.TotalAmount)

	stored, err := repo.FindByOwner(context.Background(), "NBU_001")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestGetCartEmpty(t *testing.T) {
	catalog := producttest.NewRepository()

	_, err := NewGetCartHandler(carttest.NewRepository(), catalog).Handle(context.Background(), GetCartQuery{OwnerID: "NBU_001"})
	assert.ErrorIs(t, err, ErrCartEmpty)

	repo := carttest.NewRepository(domain.Cart{OwnerID: "NBU_001"})
	_, err = NewGetCartHandler(repo, catalog).Handle(context.Background(), GetCartQuery{OwnerID: "NBU_001"})
	assert.ErrorIs(t, err, ErrCartEmpty)
}
