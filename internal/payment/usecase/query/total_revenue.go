package query

import (
	"context"

	"github.com/tair/nutribakery/internal/payment/domain"
)

// TotalRevenueHandler sums completed payments
type TotalRevenueHandler struct {
	repo domain.PaymentRepository
}

func NewTotalRevenueHandler(repo domain.PaymentRepository) *TotalRevenueHandler {
	return &TotalRevenueHandler{repo: repo}
}

func (h *TotalRevenueHandler) Handle(ctx context.Context) (float64, error) {
	return h.repo.SumByStatus(ctx, domain.StatusCompleted)
}
