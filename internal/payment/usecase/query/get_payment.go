package query

import (
	"context"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// GetPaymentQuery represents the query to get a payment
type GetPaymentQuery struct {
	ID uint
}

// GetPaymentHandler handles get payment query
type GetPaymentHandler struct {
	repo domain.PaymentRepository
}

// NewGetPaymentHandler creates a new get payment handler
func NewGetPaymentHandler(repo domain.PaymentRepository) *GetPaymentHandler {
	return &GetPaymentHandler{repo: repo}
}

// Handle executes the get payment query
func (h *GetPaymentHandler) Handle(ctx context.Context, query GetPaymentQuery) (*domain.Payment, error) {
	if query.ID == 0 {
		return nil, apperr.Validation("id is required")
	}

	payment, err := h.repo.FindByID(ctx, query.ID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.NotFound("Payment not found")
	}
	return payment, err
}
