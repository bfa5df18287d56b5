package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/internal/order/ordertest"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/internal/product/producttest"
	productquery "github.com/tair/nutribakery/internal/product/usecase/query"
	"github.com/tair/nutribakery/pkg/apperr"
)

var ordFormat = IDFormat{Prefix: "ORD_", Width: 3}

func catalog(t *testing.T) (*producttest.Repository, *productquery.ResolveRefHandler) {
	t.Helper()
	repo := producttest.NewRepository(
		producttest.Product("NBP_001", "Sourdough", 10, 5),
		producttest.Product("NBP_002", "Baguette", 4, 5),
	)
	return repo, productquery.NewResolveRefHandler(repo)
}

func placeCmd() PlaceOrderCommand {
	return PlaceOrderCommand{
		UserID:        "NBU_001",
		TotalAmount:   20,
		PaymentMethod: domain.PaymentMethodCashOnDelivery,
		Items:         []LineItem{{ProductID: "NBP_001", Quantity: 2}},
	}
}

func TestIDFormat(t *testing.T) {
	assert.Equal(t, "NBO00001", CheckoutIDFormat.Format(1))
	assert.Equal(t, "NBO123456", CheckoutIDFormat.Format(123456))
	assert.Equal(t, "ORD_007", ordFormat.Format(7))
}

func TestAllocatorNext(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing []string
		format   IDFormat
		want     string
	}{
		{"first ever", nil, CheckoutIDFormat, "NBO00001"},
		{"after highest", []string{"NBO00002", "NBO00009", "NBO00003"}, CheckoutIDFormat, "NBO00010"},
		{"longer id sorts higher", []string{"NBO99999", "NBO100000"}, CheckoutIDFormat, "NBO100001"},
		{"other prefixes ignored", []string{"ORD_050", "NBO00004"}, CheckoutIDFormat, "NBO00005"},
		{"custom width", []string{"WEB000041"}, IDFormat{Prefix: "WEB", Width: 6}, "WEB000042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []domain.Order
			for _, id := range tt.existing {
				orders = append(orders, domain.Order{OrderID: id})
			}
			got, err := NewIDAllocator(ordertest.NewRepository(orders...)).Next(ctx, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocatorRequiresPrefix(t *testing.T) {
	_, err := NewIDAllocator(ordertest.NewRepository()).Next(context.Background(), IDFormat{Width: 6})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

// An unparsable highest ID restarts numbering, and the allocator walks past taken IDs
func TestAllocatorProbesPastCollisions(t *testing.T) {
	repo := ordertest.NewRepository(
		domain.Order{OrderID: "ORD_legacy"},
		domain.Order{OrderID: "ORD_001"},
	)

	got, err := NewIDAllocator(&staleHighest{Repository: repo, highest: "ORD_legacy"}).Next(context.Background(), ordFormat)
	require.NoError(t, err)
	assert.Equal(t, "ORD_002", got)
}

// staleHighest always reports the same highest ID, like a sort key that ignores newer rows
type staleHighest struct {
	*ordertest.Repository
	highest string
}

func (s *staleHighest) FindHighestOrderID(context.Context, string) (string, error) {
	return s.highest, nil
}

// A wider custom ID or a non numeric suffix must not pin the sequence
func TestAllocatorIgnoresWidthAndNonNumericSuffixes(t *testing.T) {
	ctx := context.Background()
	_, resolver := catalog(t)
	repo := ordertest.NewRepository(
		domain.Order{OrderID: "NBO00001"},
		domain.Order{OrderID: "NBOX000001"},
	)
	ids := NewIDAllocator(repo)

	custom, err := ids.Next(ctx, IDFormat{Prefix: "NBO", Width: 6})
	require.NoError(t, err)
	assert.Equal(t, "NBO000002", custom)
	require.NoError(t, repo.Create(ctx, &domain.Order{OrderID: custom}))

	h := NewPlaceOrderHandler(repo, resolver, ids, CheckoutIDFormat)
	for want := 3; want <= 3+DefaultMaxAttempts+2; want++ {
		order, err := h.Handle(ctx, placeCmd())
		require.NoError(t, err)
		assert.Equal(t, CheckoutIDFormat.Format(want), order.OrderID)
	}

	highest, err := repo.FindHighestOrderID(ctx, "NBO")
	require.NoError(t, err)
	assert.Equal(t, CheckoutIDFormat.Format(3+DefaultMaxAttempts+2), highest)
}

func TestPlaceOrderResolvesRefs(t *testing.T) {
	ctx := context.Background()
	products, resolver := catalog(t)
	repo := ordertest.NewRepository()
	h := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), CheckoutIDFormat)

	order, err := h.Handle(ctx, placeCmd())
	require.NoError(t, err)
	assert.Equal(t, "NBO00001", order.OrderID)
	assert.Equal(t, domain.PaymentMethodCashOnDelivery, order.PaymentMethod)
	require.Len(t, order.Items, 1)

	p, err := products.FindByProductID(ctx, "NBP_001")
	require.NoError(t, err)
	assert.Equal(t, p.Ref, order.Items[0].ProductRef)
	assert.Equal(t, domain.DefaultSubscriptionType, order.Items[0].SubscriptionType)
	assert.NotNil(t, order.Items[0].CustomizationOptions)
}

func TestPlaceOrderFailsOnUnknownProduct(t *testing.T) {
	_, resolver := catalog(t)
	repo := ordertest.NewRepository()
	cmd := placeCmd()
	cmd.Items = append(cmd.Items, LineItem{ProductID: "NBP_404", Quantity: 1})

	_, err := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), CheckoutIDFormat).Handle(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, repo.Inserted())
}

func TestPlaceOrderValidation(t *testing.T) {
	_, resolver := catalog(t)

	tests := []struct {
		name   string
		mutate func(*PlaceOrderCommand)
	}{
		{"no user", func(c *PlaceOrderCommand) { c.UserID = "" }},
		{"bad method", func(c *PlaceOrderCommand) { c.PaymentMethod = "Barter" }},
		{"no items", func(c *PlaceOrderCommand) { c.Items = nil }},
		{"zero quantity", func(c *PlaceOrderCommand) { c.Items[0].Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := ordertest.NewRepository()
			cmd := placeCmd()
			tt.mutate(&cmd)
			_, err := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), CheckoutIDFormat).Handle(context.Background(), cmd)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}

// Two checkouts both read ORD_005 as the highest; the one that loses the insert re-allocates
func TestPlaceOrderRetriesAfterConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	_, resolver := catalog(t)
	repo := ordertest.NewRepository(domain.Order{OrderID: "ORD_005", UserID: "NBU_009"})

	raced := false
	repo.BeforeCreate = func(order *domain.Order) {
		if raced || order.OrderID != "ORD_006" {
			return
		}
		raced = true
		require.NoError(t, repo.Create(ctx, &domain.Order{OrderID: "ORD_006", UserID: "NBU_002"}))
	}

	order, err := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), ordFormat).Handle(ctx, placeCmd())
	require.NoError(t, err)
	assert.Equal(t, "ORD_007", order.OrderID)
	assert.Equal(t, []string{"ORD_005", "ORD_006", "ORD_007"}, repo.Inserted())
}

func TestPlaceOrderConcurrentCheckoutsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	_, resolver := catalog(t)
	repo := ordertest.NewRepository(domain.Order{OrderID: "ORD_005"})
	h := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), ordFormat)

	const n = DefaultMaxAttempts
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.Handle(ctx, placeCmd())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.ElementsMatch(t,
		[]string{"ORD_005", "ORD_006", "ORD_007", "ORD_008", "ORD_009", "ORD_010"},
		repo.Inserted())
}

func TestPlaceOrderGivesUpAfterMaxAttempts(t *testing.T) {
	_, resolver := catalog(t)
	repo := ordertest.NewRepository()
	repo.FailCreate = apperr.Conflict("order already exists", nil)

	_, err := NewPlaceOrderHandler(repo, resolver, NewIDAllocator(repo), ordFormat).Handle(context.Background(), placeCmd())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestCreateOrderDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	_, resolver := catalog(t)
	repo := ordertest.NewRepository(domain.Order{OrderID: "NBO000001"})
	h := NewCreateOrderHandler(repo, resolver)

	_, err := h.Handle(ctx, CreateOrderCommand{
		OrderID:       "NBO000001",
		UserID:        "NBU_001",
		TotalAmount:   10,
		PaymentMethod: domain.PaymentMethodStripe,
		Items:         []LineItem{{ProductID: "NBP_001", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "Duplicate orderID detected. Please try again.", apperr.MessageOf(err, ""))
	assert.Len(t, repo.Inserted(), 1)
}

func TestCreateOrderFailsWholeOrderOnMissingProduct(t *testing.T) {
	_, resolver := catalog(t)
	repo := ordertest.NewRepository()

	_, err := NewCreateOrderHandler(repo, resolver).Handle(context.Background(), CreateOrderCommand{
		OrderID:       "NBO000002",
		UserID:        "NBU_001",
		PaymentMethod: domain.PaymentMethodStripe,
		Items: []LineItem{
			{ProductID: "NBP_001", Quantity: 1},
			{ProductID: "NBP_404", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Product with ID NBP_404 not found", apperr.MessageOf(err, ""))
	assert.Empty(t, repo.Inserted())
}

func TestCreateOrderKeepsSnapshot(t *testing.T) {
	_, resolver := catalog(t)
	repo := ordertest.NewRepository()

	order, err := NewCreateOrderHandler(repo, resolver).Handle(context.Background(), CreateOrderCommand{
		OrderID:       "NBO000003",
		UserID:        "NBU_001",
		PaymentMethod: domain.PaymentMethodStripe,
		Items: []LineItem{{
			ProductID:        "NBP_002",
			Quantity:         3,
			SubscriptionType: "weekly",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, productdomain.ProductID("NBP_002"), order.Items[0].ProductID)
	assert.Equal(t, "weekly", order.Items[0].SubscriptionType)
}
