// Package carttest provides an in-memory cart store for tests.
package carttest

import (
	"context"
	"sync"

	"github.com/tair/nutribakery/internal/cart/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

type Repository struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
	saves int
}

func NewRepository(carts ...domain.Cart) *Repository {
	r := &Repository{carts: map[string]domain.Cart{}}
	for _, c := range carts {
		r.carts[c.OwnerID] = clone(c)
	}
	return r
}

func (r *Repository) FindByOwner(_ context.Context, ownerID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[ownerID]
	if !ok {
		return nil, apperr.NotFound("cart not found")
	}
	c = clone(c)
	return &c, nil
}

func (r *Repository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.carts[cart.OwnerID] = clone(*cart)
	return nil
}

// Saves reports how many times Save was called
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func clone(c domain.Cart) domain.Cart {
	c.Items = append([]domain.Item(nil), c.Items...)
	return c
}
