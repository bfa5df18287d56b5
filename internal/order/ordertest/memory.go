// Package ordertest provides an in-memory order store for tests.
package ordertest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// Repository enforces order_id uniqueness the way the unique index does
type Repository struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID uint

	// BeforeCreate runs before each insert without the lock held
	BeforeCreate func(order *domain.Order)
	// FailCreate makes every insert fail with the given error
	FailCreate error
}

func NewRepository(orders ...domain.Order) *Repository {
	r := &Repository{}
	for _, o := range orders {
		o := o
		_ = r.Create(context.Background(), &o)
	}
	return r
}

func (r *Repository) Create(_ context.Context, order *domain.Order) error {
	if r.BeforeCreate != nil {
		r.BeforeCreate(order)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate != nil {
		return r.FailCreate
	}
	for _, o := range r.orders {
		if o.OrderID == order.OrderID {
			return apperr.Conflict("order already exists", nil)
		}
	}
	r.nextID++
	order.ID = r.nextID
	r.orders = append(r.orders, *order)
	return nil
}

func (r *Repository) FindByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderID == orderID {
			o := o
			return &o, nil
		}
	}
	return nil, apperr.NotFound("order not found")
}

func (r *Repository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	_, err := r.FindByOrderID(ctx, orderID)
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	return err == nil, err
}

// FindHighestOrderID mirrors the numeric suffix ordering of the gorm repository
func (r *Repository) FindHighestOrderID(_ context.Context, prefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, o := range r.orders {
		if digitsAfter(o.OrderID, prefix) != "" {
			ids = append(ids, o.OrderID)
		}
	}
	if len(ids) == 0 {
		return "", nil
	}
	sort.Slice(ids, func(i, j int) bool {
		a := strings.TrimLeft(digitsAfter(ids[i], prefix), "0")
		b := strings.TrimLeft(digitsAfter(ids[j], prefix), "0")
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		if a != b {
			return a > b
		}
		return ids[i] > ids[j]
	})
	return ids[0], nil
}

// digitsAfter returns the suffix after prefix when it is non-empty and all digits
func digitsAfter(id, prefix string) string {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return ""
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return rest
}

func (r *Repository) FindAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Order(nil), r.orders...), nil
}

func (r *Repository) FindByUserID(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Inserted returns every stored order ID in insertion order
func (r *Repository) Inserted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.orders))
	for _, o := range r.orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}
