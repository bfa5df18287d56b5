// Package producttest provides an in-memory catalog for tests of packages that read products.
package producttest

import (
	"context"
	"strings"
	"sync"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// Repository is a goroutine safe in-memory domain.ProductRepository
type Repository struct {
	mu       sync.Mutex
	products map[domain.ProductID]domain.Product
	nextID   uint

	// FailDecrement makes DecrementStock fail for the listed IDs
	FailDecrement map[domain.ProductID]error
}

func NewRepository(products ...domain.Product) *Repository {
	r := &Repository{products: map[domain.ProductID]domain.Product{}, FailDecrement: map[domain.ProductID]error{}}
	for _, p := range products {
		p := p
		_ = r.Create(context.Background(), &p)
	}
	return r
}

// Product builds an active product with a fresh ref
func Product(id domain.ProductID, name string, price float64, stock int) domain.Product {
	p := domain.Product{ProductID: id, Ref: domain.NewProductRef(), Name: name, Price: price, Category: "Bread"}
	p.SetStock(stock)
	return p
}

func (r *Repository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ProductID]; ok {
		return apperr.Conflict("product already exists", nil)
	}
	r.nextID++
	product.ID = r.nextID
	if product.Ref == "" {
		product.Ref = domain.NewProductRef()
	}
	r.products[product.ProductID] = *product
	return nil
}

func (r *Repository) FindByProductID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	return &p, nil
}

func (r *Repository) FindByRef(_ context.Context, ref domain.ProductRef) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Ref == ref {
			p := p
			return &p, nil
		}
	}
	return nil, apperr.NotFound("product not found")
}

func (r *Repository) FindByRefs(_ context.Context, refs []domain.ProductRef) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[domain.ProductRef]bool{}
	for _, ref := range refs {
		want[ref] = true
	}
	var out []domain.Product
	for _, p := range r.products {
		if want[p.Ref] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Repository) FindAll(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

func (r *Repository) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return strings.EqualFold(p.Category, category) }), nil
}

func (r *Repository) FindSpecialties(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.IsSpecialty }), nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ProductID]; !ok {
		return apperr.NotFound("product not found")
	}
	r.products[product.ProductID] = *product
	return nil
}

func (r *Repository) Delete(_ context.Context, id domain.ProductID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product not found")
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) DecrementStock(_ context.Context, id domain.ProductID, qty int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailDecrement[id]; err != nil {
		return nil, err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	p.SetStock(p.Stock - qty)
	r.products[id] = p
	return &p, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *Repository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
