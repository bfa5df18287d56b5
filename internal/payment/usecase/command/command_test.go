package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/internal/payment/paymenttest"
	"github.com/tair/nutribakery/pkg/apperr"
)

func TestCreatePaymentDefaults(t *testing.T) {
	repo := paymenttest.NewRepository()

	p, err := NewCreatePaymentHandler(repo).Handle(context.Background(), CreatePaymentCommand{
		UserID:        "NBU_001",
		Amount:        2500,
		PaymentMethod: "Stripe",
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Equal(t, domain.DefaultCurrency, p.Currency)
}

func TestCreatePaymentValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreatePaymentCommand
	}{
		{"no user", CreatePaymentCommand{Amount: 1, PaymentMethod: "Stripe"}},
		{"negative amount", CreatePaymentCommand{UserID: "NBU_001", Amount: -1, PaymentMethod: "Stripe"}},
		{"no method", CreatePaymentCommand{UserID: "NBU_001", Amount: 1}},
		{"bad status", CreatePaymentCommand{UserID: "NBU_001", Amount: 1, PaymentMethod: "Stripe", Status: "Refunded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCreatePaymentHandler(paymenttest.NewRepository()).Handle(context.Background(), tt.cmd)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
		})
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantKind apperr.Kind
	}{
		{"pending to completed", domain.StatusPending, domain.StatusCompleted, apperr.KindUnknown},
		{"pending to failed", domain.StatusPending, domain.StatusFailed, apperr.KindUnknown},
		{"completed to failed", domain.StatusCompleted, domain.StatusFailed, apperr.KindConflict},
		{"failed to completed", domain.StatusFailed, domain.StatusCompleted, apperr.KindConflict},
		{"pending to pending", domain.StatusPending, domain.StatusPending, apperr.KindConflict},
		{"unknown status", domain.StatusPending, "Refunded", apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := paymenttest.NewRepository(domain.Payment{UserID: "NBU_001", Amount: 10, PaymentMethod: "Cash on Delivery", Status: tt.from})

			p, err := NewUpdateStatusHandler(repo).Handle(ctx, UpdateStatusCommand{PaymentID: 1, Status: tt.to})
			if tt.wantKind == apperr.KindUnknown {
				require.NoError(t, err)
				assert.Equal(t, tt.to, p.Status)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))

			stored, err := repo.FindByID(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.from, stored.Status)
		})
	}
}

func TestUpdateStatusMissingPayment(t *testing.T) {
	_, err := NewUpdateStatusHandler(paymenttest.NewRepository()).
		Handle(context.Background(), UpdateStatusCommand{PaymentID: 7, Status: domain.StatusCompleted})
	assert.ErrorIs(t, err, apperr.NotFound("Payment not found"))
}
