// Package notification emails customers when an order.placed event arrives.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/kafka"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/mailer"
)

// Accounts resolves the order owner
type Accounts interface {
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
}

// Service turns order events into confirmation emails
type Service struct {
	accounts Accounts
	mailer   mailer.Sender
}

func NewService(accounts Accounts, sender mailer.Sender) *Service {
	return &Service{accounts: accounts, mailer: sender}
}

// HandleOrderPlaced matches kafka.EventHandler. An unknown owner is logged and skipped.
func (s *Service) HandleOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	user, err := s.accounts.FindByUserID(ctx, event.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			logger.Warn(ctx).Str("order_id", event.OrderID).Str("user_id", event.UserID).Msg("Order owner not found, skipping confirmation")
			return nil
		}
		return err
	}

	if err := s.mailer.Send(ctx, confirmation(user, event)); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	logger.Info(ctx).Str("order_id", event.OrderID).Str("user_id", user.UserID).Msg("Order confirmation sent")
	return nil
}

func confirmation(user *domain.User, event kafka.OrderPlacedEvent) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nThank you for your order %s.\n\n", user.Username, event.OrderID)
	for _, it := range event.Items {
		fmt.Fprintf(&b, "  %s x %d\n", it.ProductID, it.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f %s\nPayment: %s (%s)\n", event.TotalAmount, event.Currency, event.PaymentMethod, event.PaymentStatus)
	if user.Address != "" {
		fmt.Fprintf(&b, "Delivery address: %s\n", user.Address)
	}

	return mailer.Message{
		To:       []string{user.Email},
		Subject:  "Order Confirmation - " + event.OrderID,
		TextBody: b.String(),
	}
}
