// Package paymenttest provides an in-memory payment store for tests.
package paymenttest

import (
	"context"
	"sort"
	"sync"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

type Repository struct {
	mu       sync.Mutex
	payments map[uint]domain.Payment
	nextID   uint

	// FailCreate makes every insert fail with the given error
	FailCreate error
}

func NewRepository(payments ...domain.Payment) *Repository {
	r := &Repository{payments: map[uint]domain.Payment{}}
	for _, p := range payments {
		p := p
		_ = r.Create(context.Background(), &p)
	}
	return r
}

func (r *Repository) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.nextID++
	payment.ID = r.nextID
	r.payments[payment.ID] = *payment
	return nil
}

func (r *Repository) FindByID(_ context.Context, id uint) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, apperr.NotFound("payment not found")
	}
	return &p, nil
}

func (r *Repository) FindByUserID(_ context.Context, userID string, limit, offset int) ([]domain.Payment, error) {
	return r.page(func(p domain.Payment) bool { return p.UserID == userID }, limit, offset), nil
}

func (r *Repository) FindAll(_ context.Context, limit, offset int) ([]domain.Payment, error) {
	return r.page(func(domain.Payment) bool { return true }, limit, offset), nil
}

func (r *Repository) UpdateStatus(_ context.Context, id uint, from, to string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != from {
		return nil, apperr.Conflict("payment status changed concurrently", nil)
	}
	p.Status = to
	r.payments[id] = p
	return &p, nil
}

func (r *Repository) SumByStatus(_ context.Context, status string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, p := range r.payments {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

// All returns every payment ordered by ID
func (r *Repository) All() []domain.Payment {
	return r.page(func(domain.Payment) bool { return true }, 0, 0)
}

func (r *Repository) page(keep func(domain.Payment) bool, limit, offset int) []domain.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Payment{}
	for _, p := range r.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []domain.Payment{}
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
