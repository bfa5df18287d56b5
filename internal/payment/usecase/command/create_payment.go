package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// CreatePaymentCommand represents the command to create a payment
type CreatePaymentCommand struct {
	OrderID       string
	UserID        string
	Amount        float64
	Currency      string
	PaymentMethod string
	Status        string
}

// CreatePaymentHandler handles create payment command
type CreatePaymentHandler struct {
	repo domain.PaymentRepository
}

// NewCreatePaymentHandler creates a new create payment handler
func NewCreatePaymentHandler(repo domain.PaymentRepository) *CreatePaymentHandler {
	return &CreatePaymentHandler{repo: repo}
}

// Handle executes the create payment command
func (h *CreatePaymentHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	if cmd.UserID == "" {
		return nil, apperr.Validation("userID is required")
	}
	if cmd.Amount < 0 {
		return nil, apperr.Validation("amount must not be negative")
	}
	if cmd.PaymentMethod == "" {
		return nil, apperr.Validation("payment method is required")
	}
	if cmd.Status == "" {
		cmd.Status = domain.StatusCompleted
	}
	if !domain.ValidStatus(cmd.Status) {
		return nil, apperr.Validation("invalid payment status: " + cmd.Status)
	}
	if cmd.Currency == "" {
		cmd.Currency = domain.DefaultCurrency
	}

	payment := &domain.Payment{
		OrderID:       cmd.OrderID,
		UserID:        cmd.UserID,
		Amount:        cmd.Amount,
		Currency:      cmd.Currency,
		PaymentMethod: cmd.PaymentMethod,
		Status:        cmd.Status,
	}

	if err := h.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}
