package command

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/internal/product/producttest"
	"github.com/tair/nutribakery/pkg/apperr"
)

type counterAllocator struct {
	mu sync.Mutex
	n  int
}

func (a *counterAllocator) Allocate(_ context.Context, prefix string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n++
	return fmt.Sprintf("%s_%03d", prefix, a.n), nil
}

func ptr[T any](v T) *T { return &v }

func validCreate() CreateProductCommand {
	return CreateProductCommand{
		Name:        "Sourdough",
		Description: "Slow fermented loaf",
		Price:       ptr(1200.0),
		Stock:       ptr(10),
		Category:    "Bread",
		ImageURL:    "http://localhost/uploads/a.png",
	}
}

func TestCreateProductRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := producttest.NewRepository()
	h := NewCreateProductHandler(repo, &counterAllocator{})

	created, err := h.Handle(ctx, validCreate())
	require.NoError(t, err)
	assert.Equal(t, domain.ProductID("NBP_001"), created.ProductID)
	assert.NotEmpty(t, created.Ref)
	assert.Equal(t, domain.StatusActive, created.Status)

	stored, err := repo.FindByProductID(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, stored.Name)
	assert.Equal(t, created.Price, stored.Price)
	assert.Equal(t, created.Stock, stored.Stock)
	assert.Equal(t, created.Ref, stored.Ref)
}

func TestCreateProductZeroStockIsOutOfStock(t *testing.T) {
	cmd := validCreate()
	cmd.Stock = ptr(0)

	p, err := NewCreateProductHandler(producttest.NewRepository(), &counterAllocator{}).Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, p.Status)
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateProductCommand)
	}{
		{"missing name", func(c *CreateProductCommand) { c.Name = "" }},
		{"missing price", func(c *CreateProductCommand) { c.Price = nil }},
		{"missing stock", func(c *CreateProductCommand) { c.Stock = nil }},
		{"missing image", func(c *CreateProductCommand) { c.ImageURL = "" }},
		{"negative price", func(c *CreateProductCommand) { c.Price = ptr(-1.0) }},
		{"negative stock", func(c *CreateProductCommand) { c.Stock = ptr(-3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreate()
			tt.mutate(&cmd)
			_, err := NewCreateProductHandler(producttest.NewRepository(), &counterAllocator{}).Handle(context.Background(), cmd)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	ctx := context.Background()
	pending := domain.Product{ProductID: "NBP_001", Name: "Rye", Price: 500, Status: domain.StatusPending}
	repo := producttest.NewRepository(pending)
	h := NewUpdateProductHandler(repo)

	updated, err := h.Handle(ctx, UpdateProductCommand{ProductID: "NBP_001", Price: ptr(650.0)})
	require.NoError(t, err)
	assert.Equal(t, 650.0, updated.Price)
	assert.Equal(t, "Rye", updated.Name)
	assert.Equal(t, domain.StatusPending, updated.Status, "status untouched without stock")

	updated, err = h.Handle(ctx, UpdateProductCommand{ProductID: "NBP_001", Stock: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)

	updated, err = h.Handle(ctx, UpdateProductCommand{ProductID: "NBP_001", Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, updated.Status)
}

func TestUpdateProductNotFound(t *testing.T) {
	_, err := NewUpdateProductHandler(producttest.NewRepository()).Handle(context.Background(),
		UpdateProductCommand{ProductID: "NBP_404", Name: ptr("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdateStock(t *testing.T) {
	ctx := context.Background()
	repo := producttest.NewRepository(producttest.Product("NBP_001", "Rye", 500, 0))
	h := NewUpdateStockHandler(repo)

	_, err := h.Handle(ctx, UpdateStockCommand{ProductID: "NBP_001"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	p, err := h.Handle(ctx, UpdateStockCommand{ProductID: "NBP_001", Stock: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, domain.StatusActive, p.Status)
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	repo := producttest.NewRepository(producttest.Product("NBP_002", "Bagel", 200, 3))
	h := NewDecrementStockHandler(repo)

	p, err := h.DecrementStock(ctx, "NBP_002", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	assert.Equal(t, domain.StatusActive, p.Status)

	p, err = h.DecrementStock(ctx, "NBP_002", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, domain.StatusOutOfStock, p.Status)

	_, err = h.DecrementStock(ctx, "NBP_002", 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestToggleSpecialtyAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := producttest.NewRepository(producttest.Product("NBP_003", "Cake", 3000, 2))

	p, err := NewToggleSpecialtyHandler(repo).Handle(ctx, ToggleSpecialtyCommand{ProductID: "NBP_003"})
	require.NoError(t, err)
	assert.True(t, p.IsSpecialty)

	del := NewDeleteProductHandler(repo)
	require.NoError(t, del.Handle(ctx, DeleteProductCommand{ProductID: "NBP_003"}))
	assert.True(t, apperr.Is(del.Handle(ctx, DeleteProductCommand{ProductID: "NBP_003"}), apperr.KindNotFound))
}
