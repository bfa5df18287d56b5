package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/internal/order/ordertest"
	"github.com/tair/nutribakery/internal/order/usecase/command"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/internal/product/producttest"
)

type directory struct {
	customers map[string]Customer
	err       error
}

func (d directory) FindCustomers(_ context.Context, ids []string) (map[string]Customer, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := map[string]Customer{}
	for _, id := range ids {
		if c, ok := d.customers[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func TestListOrdersDenormalizes(t *testing.T) {
	ctx := context.Background()
	sourdough := producttest.Product("NBP_001", "Sourdough", 10, 5)
	sourdough.ImageURL = "http://localhost/uploads/sourdough.png"
	products := producttest.NewRepository(sourdough)

	orders := ordertest.NewRepository(
		domain.Order{
			OrderID:       "NBO00001",
			UserID:        "NBU_001",
			TotalAmount:   20,
			PaymentMethod: domain.PaymentMethodStripe,
			Items: []domain.Item{
				{ProductRef: sourdough.Ref, ProductID: "NBP_001", Quantity: 2},
				{ProductRef: productdomain.NewProductRef(), ProductID: "NBP_099", Quantity: 1},
			},
		},
		domain.Order{OrderID: "NBO00002", UserID: "NBU_404", PaymentMethod: domain.PaymentMethodCashOnDelivery},
	)
	customers := directory{customers: map[string]Customer{
		"NBU_001": {Name: "amaya", Address: "12 Galle Rd", Email: "amaya@example.com"},
	}}

	views, err := NewListOrdersHandler(orders, customers, products).Handle(ctx, ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	first := views[0]
	assert.Equal(t, "amaya", first.UserName)
	assert.Equal(t, "12 Galle Rd", first.UserAddress)
	assert.Equal(t, "Unknown", first.UserPhoneNumber)
	require.Len(t, first.OrderedItems, 2)
	assert.Equal(t, "Sourdough", first.OrderedItems[0].Name)
	assert.Equal(t, 10.0, first.OrderedItems[0].Price)
	assert.Equal(t, sourdough.ImageURL, first.OrderedItems[0].ImageURL)
	assert.Equal(t, "none", first.OrderedItems[0].SubscriptionType)

	gone := first.OrderedItems[1]
	assert.Equal(t, "Unknown", gone.ProductID)
	assert.Equal(t, "Unknown", gone.Name)
	assert.Zero(t, gone.Price)
	assert.Empty(t, gone.ImageURL)

	assert.Equal(t, "Unknown", views[1].UserName)
	assert.Equal(t, "Unknown", views[1].UserEmail)
}

func TestListOrdersSurvivesDirectoryFailure(t *testing.T) {
	orders := ordertest.NewRepository(domain.Order{OrderID: "NBO00001", UserID: "NBU_001"})

	views, err := NewListOrdersHandler(orders, directory{err: errors.New("db down")}, producttest.NewRepository()).
		Handle(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Unknown", views[0].UserName)
}

func TestListOrdersByUser(t *testing.T) {
	orders := ordertest.NewRepository(
		domain.Order{OrderID: "NBO00001", UserID: "NBU_001"},
		domain.Order{OrderID: "NBO00002", UserID: "NBU_002"},
	)

	views, err := NewListOrdersHandler(orders, directory{}, producttest.NewRepository()).
		Handle(context.Background(), ListOrdersQuery{UserID: "NBU_002"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "NBO00002", views[0].OrderID)
}

func TestNextIDUsesSixDigits(t *testing.T) {
	orders := ordertest.NewRepository(domain.Order{OrderID: "NBO000041"})

	id, err := NewNextIDHandler(command.NewIDAllocator(orders)).Handle(context.Background(), "NBO")
	require.NoError(t, err)
	assert.Equal(t, "NBO000042", id)
}
