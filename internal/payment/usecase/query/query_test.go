package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/internal/payment/paymenttest"
)

func seeded() *paymenttest.Repository {
	return paymenttest.NewRepository(
		domain.Payment{UserID: "NBU_001", Amount: 1000, PaymentMethod: "Stripe", Status: domain.StatusCompleted},
		domain.Payment{UserID: "NBU_002", Amount: 400, PaymentMethod: "Cash on Delivery", Status: domain.StatusPending},
		domain.Payment{UserID: "NBU_001", Amount: 250.5, PaymentMethod: "Stripe", Status: domain.StatusCompleted},
		domain.Payment{UserID: "NBU_003", Amount: 90, PaymentMethod: "Stripe", Status: domain.StatusFailed},
	)
}

func TestTotalRevenueCountsCompletedOnly(t *testing.T) {
	total, err := NewTotalRevenueHandler(seeded()).Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1250.5, total)
}

func TestGetMyPayments(t *testing.T) {
	payments, err := NewGetMyPaymentsHandler(seeded()).Handle(context.Background(), GetMyPaymentsQuery{UserID: "NBU_001"})
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, "NBU_001", p.UserID)
	}
}

func TestListPaymentsPaging(t *testing.T) {
	h := NewListPaymentsHandler(seeded())

	page, err := h.Handle(context.Background(), ListPaymentsQuery{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page, 3)

	rest, err := h.Handle(context.Background(), ListPaymentsQuery{Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestGetPaymentNotFound(t *testing.T) {
	_, err := NewGetPaymentHandler(seeded()).Handle(context.Background(), GetPaymentQuery{ID: 99})
	require.Error(t, err)
	assert.Equal(t, "Payment not found", err.Error())
}
