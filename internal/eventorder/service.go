package eventorder

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/mailer"
)

const (
	columnPayment  = "payment_status"
	columnDelivery = "delivery_status"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type Store interface {
	Create(ctx context.Context, order *EventOrder) error
	GetAll(ctx context.Context) ([]EventOrder, error)
	UpdateField(ctx context.Context, id uint, column, value string) (*EventOrder, error)
}

// Service handles custom event orders
type Service struct {
	repo   Store
	mailer mailer.Sender
}

func NewService(repo Store, sender mailer.Sender) *Service {
	return &Service{repo: repo, mailer: sender}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("date is invalid")
}

// Create stores the order and mails the customer a confirmation.
// Product images are matched to products by position.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*EventOrder, error) {
	order := &EventOrder{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		EventType:      strings.TrimSpace(req.EventType),
		Instructions:   strings.TrimSpace(req.Instructions),
		Images:         req.Images,
		PaymentStatus:  PaymentPending,
		DeliveryStatus: DeliveryNotDelivered,
	}
	if order.Name == "" || order.Email == "" || order.EventType == "" {
		return nil, apperr.Validation("name, email and event type are required")
	}
	if _, err := mail.ParseAddress(order.Email); err != nil {
		return nil, apperr.Validation("email is invalid")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	order.Date = date

	for i, p := range req.Products {
		p.Product = strings.TrimSpace(p.Product)
		if p.Product == "" || p.Quantity < 1 {
			return nil, apperr.Validation(fmt.Sprintf("product %d needs a name and a quantity of at least 1", i+1))
		}
		p.Image = ""
		if i < len(req.ProductImages) {
			p.Image = req.ProductImages[i]
		}
		order.Products = append(order.Products, p)
	}
	if order.Images == nil {
		order.Images = []string{}
	}
	if order.Products == nil {
		order.Products = []Product{}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:       []string{order.Email},
		Subject:  "Order Confirmation",
		TextBody: fmt.Sprintf("Dear %s,\n\nYour order has been confirmed for the event on %s.", order.Name, order.Date.Format("January 2, 2006")),
	})
	if err != nil {
		logger.Error(ctx).Err(err).Uint("event_order_id", order.ID).Msg("Event order confirmation failed")
		return nil, apperr.External("Failed to save event order", err)
	}

	logger.Info(ctx).Uint("event_order_id", order.ID).Str("event_type", order.EventType).Msg("Event order created")
	return order, nil
}

func (s *Service) GetAll(ctx context.Context) ([]EventOrder, error) {
	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []EventOrder{}
	}
	return orders, nil
}

func (s *Service) SetPaymentStatus(ctx context.Context, id uint, status string) (*EventOrder, error) {
	if !paymentStatuses[status] {
		return nil, apperr.Validation("invalid payment status")
	}
	return s.repo.UpdateField(ctx, id, columnPayment, status)
}

func (s *Service) SetDeliveryStatus(ctx context.Context, id uint, status string) (*EventOrder, error) {
	if !deliveryStatuses[status] {
		return nil, apperr.Validation("invalid delivery status")
	}
	return s.repo.UpdateField(ctx, id, columnDelivery, status)
}
