package eventorder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/mailer"
)

type memoryStore struct {
	orders []EventOrder
}

func (m *memoryStore) Create(_ context.Context, order *EventOrder) error {
	order.ID = uint(len(m.orders) + 1)
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memoryStore) GetAll(context.Context) ([]EventOrder, error) {
	return m.orders, nil
}

func (m *memoryStore) UpdateField(_ context.Context, id uint, column, value string) (*EventOrder, error) {
	for i := range m.orders {
		if m.orders[i].ID != id {
			continue
		}
		switch column {
		case columnPayment:
			m.orders[i].PaymentStatus = value
		case columnDelivery:
			m.orders[i].DeliveryStatus = value
		}
		o := m.orders[i]
		return &o, nil
	}
	return nil, apperr.NotFound("event order not found")
}

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func validRequest() CreateRequest {
	return CreateRequest{
		Name:          "Kim",
		Email:         "kim@example.com",
		EventType:     "Wedding",
		Date:          "2026-12-24",
		Products:      []Product{{Product: "Cupcakes", Quantity: 40}, {Product: "Tart", Quantity: 2}},
		ProductImages: []string{"http://localhost/uploads/cupcake.png"},
		Images:        []string{"http://localhost/uploads/venue.png"},
	}
}

func TestCreateEventOrder(t *testing.T) {
	store := &memoryStore{}
	mail := &recordingMailer{}

	order, err := NewService(store, mail).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	assert.Equal(t, DeliveryNotDelivered, order.DeliveryStatus)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "http://localhost/uploads/cupcake.png", order.Products[0].Image)
	assert.Empty(t, order.Products[1].Image)
	assert.Equal(t, 2026, order.Date.Year())

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"kim@example.com"}, mail.sent[0].To)
	assert.Equal(t, "Order Confirmation", mail.sent[0].Subject)
	assert.Contains(t, mail.sent[0].TextBody, "December 24, 2026")
}

func TestCreateEventOrderMailFailure(t *testing.T) {
	store := &memoryStore{}
	_, err := NewService(store, &recordingMailer{err: errors.New("smtp down")}).Create(context.Background(), validRequest())
	assert.True(t, apperr.Is(err, apperr.KindExternal))
	assert.Len(t, store.orders, 1)
}

func TestCreateEventOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"missing name", func(r *CreateRequest) { r.Name = "" }},
		{"bad email", func(r *CreateRequest) { r.Email = "kim" }},
		{"bad date", func(r *CreateRequest) { r.Date = "next friday" }},
		{"zero quantity", func(r *CreateRequest) { r.Products[0].Quantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			req := validRequest()
			tt.mutate(&req)
			_, err := NewService(store, &recordingMailer{}).Create(context.Background(), req)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Empty(t, store.orders)
		})
	}
}

func TestStatusUpdates(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, &recordingMailer{})
	order, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	updated, err := svc.SetPaymentStatus(context.Background(), order.ID, PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, updated.PaymentStatus)

	updated, err = svc.SetDeliveryStatus(context.Background(), order.ID, DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivered, updated.DeliveryStatus)

	_, err = svc.SetPaymentStatus(context.Background(), order.ID, "Refunded")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetDeliveryStatus(context.Background(), 99, DeliveryDelivered)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
