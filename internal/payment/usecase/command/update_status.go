package command

import (
	"context"
	"fmt"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// UpdateStatusCommand represents the command to update payment status
type UpdateStatusCommand struct {
	PaymentID uint
	Status    string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo domain.PaymentRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.PaymentRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle settles a pending payment as Completed or Failed
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Payment, error) {
	if cmd.PaymentID == 0 {
		return nil, apperr.Validation("payment id is required")
	}
	if !domain.ValidStatus(cmd.Status) {
		return nil, apperr.Validation("invalid status: " + cmd.Status)
	}

	current, err := h.repo.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("Payment not found")
		}
		return nil, err
	}
	if !domain.CanTransition(current.Status, cmd.Status) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot change payment status from %s to %s", current.Status, cmd.Status), nil)
	}

	payment, err := h.repo.UpdateStatus(ctx, cmd.PaymentID, current.Status, cmd.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return payment, nil
}
