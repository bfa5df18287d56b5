package query

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// GetMyPaymentsQuery represents the query to get user's own payments
type GetMyPaymentsQuery struct {
	UserID string
	Limit  int
	Offset int
}

// GetMyPaymentsHandler handles get my payments query
type GetMyPaymentsHandler struct {
	repo domain.PaymentRepository
}

// NewGetMyPaymentsHandler creates a new get my payments handler
func NewGetMyPaymentsHandler(repo domain.PaymentRepository) *GetMyPaymentsHandler {
	return &GetMyPaymentsHandler{repo: repo}
}

// Handle executes the get my payments query
func (h *GetMyPaymentsHandler) Handle(ctx context.Context, query GetMyPaymentsQuery) ([]domain.Payment, error) {
	if query.UserID == "" {
		return nil, apperr.Unauthorized("user is required")
	}

	payments, err := h.repo.FindByUserID(ctx, query.UserID, clampLimit(query.Limit), query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user payments: %w", err)
	}

	return payments, nil
}
