package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	cartcommand "github.com/tair/nutribakery/internal/cart/usecase/command"
	"github.com/tair/nutribakery/internal/checkout/domain"
	orderdomain "github.com/tair/nutribakery/internal/order/domain"
	ordercommand "github.com/tair/nutribakery/internal/order/usecase/command"
	paymentdomain "github.com/tair/nutribakery/internal/payment/domain"
	paymentcommand "github.com/tair/nutribakery/internal/payment/usecase/command"
	"github.com/tair/nutribakery/kafka"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/tracing"
)

var tracer = otel.Tracer("checkout-orchestrator")

// Claim scopes
const (
	scopeWebhook = "webhook"
	scopeCOD     = "cod"
)

// Config holds the currencies and claim lifetimes of the orchestrator.
// ProcessingTTL bounds how long a crashed attempt blocks redelivery; ClaimTTL is how long
// a booked key is remembered.
type Config struct {
	SourceCurrency     string
	SettlementCurrency string
	ProcessingTTL      time.Duration
	ClaimTTL           time.Duration
}

func DefaultConfig() Config {
	return Config{
		SourceCurrency:     "LKR",
		SettlementCurrency: "USD",
		ProcessingTTL:      5 * time.Minute,
		ClaimTTL:           24 * time.Hour,
	}
}

// Orchestrator runs the online and cash on delivery checkout paths and the post-payment cleanup.
// Steps commit one by one; a failing step is reported without undoing earlier ones.
type Orchestrator struct {
	orders    domain.OrderPlacer
	payments  domain.PaymentRecorder
	carts     domain.CartReconciler
	converter domain.CurrencyConverter
	sessions  domain.SessionProvider
	claims    domain.ClaimStore
	events    domain.EventPublisher
	metrics   *Metrics
	cfg       Config
}

func NewOrchestrator(
	orders domain.OrderPlacer,
	payments domain.PaymentRecorder,
	carts domain.CartReconciler,
	converter domain.CurrencyConverter,
	sessions domain.SessionProvider,
	claims domain.ClaimStore,
	events domain.EventPublisher,
	metrics *Metrics,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		payments:  payments,
		carts:     carts,
		converter: converter,
		sessions:  sessions,
		claims:    claims,
		events:    events,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// SessionRequest asks for a hosted checkout session; Total and item prices are in the source currency
type SessionRequest struct {
	OwnerID    string
	Items      []domain.SessionItem
	Total      float64
	SuccessURL string
	CancelURL  string
}

// CreateSession converts the total, spreads it over the items and opens a hosted session
func (o *Orchestrator) CreateSession(ctx context.Context, req SessionRequest) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "checkout.CreateSession",
		trace.WithAttributes(
			attribute.String("checkout.owner_id", req.OwnerID),
			attribute.Int("checkout.items", len(req.Items)),
			attribute.Float64("checkout.total", req.Total),
		),
	)
	defer span.End()

	session, err := o.createSession(ctx, req)
	tracing.RecordError(span, err)
	if err != nil {
		o.metrics.observe("session", outcomeFailure)
		return nil, err
	}
	span.SetAttributes(attribute.String("checkout.session_id", session.ID))
	o.metrics.observe("session", outcomeSuccess)
	return session, nil
}

func (o *Orchestrator) createSession(ctx context.Context, req SessionRequest) (*domain.Session, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, apperr.Validation("userID is required.")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("items are required")
	}
	if req.Total <= 0 {
		return nil, apperr.Validation("total amount must be greater than 0")
	}

	converted, err := o.converter.Convert(ctx, req.Total, o.cfg.SourceCurrency, o.cfg.SettlementCurrency)
	if err != nil {
		return nil, apperr.External("Unable to convert currency. Please try again.", err)
	}
	o.metrics.observeAmount(converted)

	lineItems, err := allocateLineItems(req.Items, req.Total, converted)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		domain.MetaUserID: req.OwnerID,
		domain.MetaTotal:  strconv.FormatFloat(req.Total, 'f', -1, 64),
	}
	if err := encodeItemsMetadata(req.Items, metadata); err != nil {
		return nil, err
	}

	session, err := o.sessions.CreateSession(ctx, domain.SessionParams{
		Currency:   strings.ToLower(o.cfg.SettlementCurrency),
		LineItems:  lineItems,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		return nil, apperr.External("Failed to create checkout session", err)
	}

	logger.Info(ctx).
		Str("session_id", session.ID).
		Str("owner_id", req.OwnerID).
		Float64("total", req.Total).
		Float64("converted", converted).
		Str("state", string(domain.StateSessionCreated)).
		Msg("Checkout session created")
	return session, nil
}

// allocateLineItems gives each item price/total of the converted amount, in minor units
func allocateLineItems(items []domain.SessionItem, total, converted float64) ([]domain.LineItem, error) {
	dTotal := decimal.NewFromFloat(total)
	dConverted := decimal.NewFromFloat(converted)
	hundred := decimal.NewFromInt(100)

	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be greater than 0 for " + it.Name)
		}
		if it.Price < 0 {
			return nil, apperr.Validation("price must not be negative for " + it.Name)
		}
		unit := decimal.NewFromFloat(it.Price).Div(dTotal).Mul(dConverted).Mul(hundred).Round(0)
		out = append(out, domain.LineItem{
			Name:       it.Name,
			UnitAmount: unit.IntPart(),
			Quantity:   int64(it.Quantity),
		})
	}
	return out, nil
}

// ConfirmationResult is what the webhook acknowledges; failures list persistence steps that did not happen
type ConfirmationResult struct {
	EventID   string       `json:"event_id"`
	Duplicate bool         `json:"duplicate,omitempty"`
	OrderID   string       `json:"order_id,omitempty"`
	PaymentID uint         `json:"payment_id,omitempty"`
	State     domain.State `json:"state"`
	Failures  []string     `json:"failures,omitempty"`
}

// HandleConfirmation books a confirmed online payment. A redelivered event is acknowledged and skipped.
// Order and payment persistence are independent: either failing is logged and the other still runs.
func (o *Orchestrator) HandleConfirmation(ctx context.Context, payload []byte, signature string) (*ConfirmationResult, error) {
	ctx, span := tracer.Start(ctx, "checkout.HandleConfirmation")
	defer span.End()

	conf, err := o.sessions.ParseConfirmation(payload, signature)
	if err != nil {
		o.metrics.observe("webhook", outcomeRejected)
		err = apperr.New(apperr.KindValidation, "Webhook Error", err)
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("checkout.event_id", conf.EventID),
		attribute.String("checkout.event_type", conf.Type),
	)

	if conf.Type != domain.EventCheckoutCompleted {
		o.metrics.observe("webhook", outcomeRejected)
		logger.Warn(ctx).Str("event_type", conf.Type).Msg("Unsupported webhook event type")
		return nil, apperr.Validation("unsupported event type " + conf.Type)
	}

	result := &ConfirmationResult{EventID: conf.EventID, State: domain.StateInitiated}

	claimed := o.claim(ctx, scopeWebhook, conf.EventID)
	if !claimed {
		done, err := o.claims.Completed(ctx, scopeWebhook, conf.EventID)
		if err != nil {
			return nil, apperr.New(apperr.KindStorage, "Webhook Error", err)
		}
		if !done {
			// a non 2xx answer makes the provider redeliver once the other attempt settles
			o.metrics.observe("webhook", outcomeInFlight)
			logger.Info(ctx).Str("event_id", conf.EventID).Msg("Checkout confirmation already in progress")
			return nil, apperr.Conflict("confirmation already in progress", nil)
		}
		o.metrics.observe("webhook", outcomeDuplicate)
		logger.Info(ctx).Str("event_id", conf.EventID).Msg("Duplicate checkout confirmation ignored")
		result.Duplicate = true
		return result, nil
	}

	ownerID := conf.Metadata[domain.MetaUserID]
	if ownerID == "" {
		o.release(ctx, scopeWebhook, conf.EventID)
		o.metrics.observe("webhook", outcomeRejected)
		logger.Error(ctx).Str("event_id", conf.EventID).Msg("Missing userID in session metadata")
		return nil, apperr.Validation("userID is required.")
	}

	items, err := decodeItemsMetadata(conf.Metadata)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("event_id", conf.EventID).Msg("Unreadable items in session metadata")
	}
	total, err := strconv.ParseFloat(conf.Metadata[domain.MetaTotal], 64)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("event_id", conf.EventID).Msg("Unreadable total in session metadata")
	}

	order, err := o.orders.Handle(ctx, ordercommand.PlaceOrderCommand{
		UserID:        ownerID,
		TotalAmount:   total,
		PaymentMethod: orderdomain.PaymentMethodStripe,
		Items:         toLineItems(items),
	})
	if err != nil {
		o.metrics.observe("order", outcomeFailure)
		logger.Error(ctx).Err(err).Str("event_id", conf.EventID).Msg("Error saving order")
		result.Failures = append(result.Failures, "order: "+err.Error())
	} else {
		o.metrics.observe("order", outcomeSuccess)
		result.OrderID = order.OrderID
		result.State = domain.StateOrderPersisted
	}

	payment, err := o.payments.Handle(ctx, paymentcommand.CreatePaymentCommand{
		OrderID:       result.OrderID,
		UserID:        ownerID,
		Amount:        total,
		Currency:      o.cfg.SourceCurrency,
		PaymentMethod: orderdomain.PaymentMethodStripe,
		Status:        paymentdomain.StatusCompleted,
	})
	if err != nil {
		o.metrics.observe("payment", outcomeFailure)
		logger.Error(ctx).Err(err).Str("event_id", conf.EventID).Msg("Error saving payment")
		result.Failures = append(result.Failures, "payment: "+err.Error())
	} else {
		o.metrics.observe("payment", outcomeSuccess)
		result.PaymentID = payment.ID
		result.State = domain.StatePaymentRecorded
	}

	if order == nil && payment == nil {
		// nothing was booked, let the provider's redelivery try again
		o.release(ctx, scopeWebhook, conf.EventID)
	} else {
		o.complete(ctx, scopeWebhook, conf.EventID)
	}
	if order != nil {
		o.publish(ctx, order, paymentdomain.StatusCompleted)
	}

	span.SetAttributes(
		attribute.String("checkout.order_id", result.OrderID),
		attribute.String("checkout.state", string(result.State)),
	)
	logger.Info(ctx).
		Str("event_id", conf.EventID).
		Str("order_id", result.OrderID).
		Str("state", string(result.State)).
		Int("failures", len(result.Failures)).
		Msg("Checkout confirmation processed")
	return result, nil
}

// CODRequest places an order to be paid on delivery
type CODRequest struct {
	OwnerID        string
	IdempotencyKey string
	Total          float64
	Items          []ordercommand.LineItem
}

type CODResult struct {
	Order   *orderdomain.Order     `json:"order"`
	Payment *paymentdomain.Payment `json:"payment"`
	State   domain.State           `json:"state"`
}

// CashOnDelivery persists the order and a Pending payment
func (o *Orchestrator) CashOnDelivery(ctx context.Context, req CODRequest) (*CODResult, error) {
	ctx, span := tracer.Start(ctx, "checkout.CashOnDelivery",
		trace.WithAttributes(
			attribute.String("checkout.owner_id", req.OwnerID),
			attribute.Int("checkout.items", len(req.Items)),
		),
	)
	defer span.End()

	result, err := o.cashOnDelivery(ctx, req)
	tracing.RecordError(span, err)
	if err != nil {
		return result, err
	}
	span.SetAttributes(attribute.String("checkout.order_id", result.Order.OrderID))
	return result, nil
}

func (o *Orchestrator) cashOnDelivery(ctx context.Context, req CODRequest) (*CODResult, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, apperr.Validation("User details are required.")
	}

	if req.IdempotencyKey != "" {
		if !o.claim(ctx, scopeCOD, req.OwnerID+":"+req.IdempotencyKey) {
			o.metrics.observe("cod", outcomeDuplicate)
			return nil, apperr.Conflict("duplicate cash on delivery request", nil)
		}
	}

	order, err := o.orders.Handle(ctx, ordercommand.PlaceOrderCommand{
		UserID:        req.OwnerID,
		TotalAmount:   req.Total,
		PaymentMethod: orderdomain.PaymentMethodCashOnDelivery,
		Items:         req.Items,
	})
	if err != nil {
		if req.IdempotencyKey != "" {
			o.release(ctx, scopeCOD, req.OwnerID+":"+req.IdempotencyKey)
		}
		o.metrics.observe("order", outcomeFailure)
		return nil, err
	}
	o.metrics.observe("order", outcomeSuccess)
	if req.IdempotencyKey != "" {
		o.complete(ctx, scopeCOD, req.OwnerID+":"+req.IdempotencyKey)
	}
	result := &CODResult{Order: order, State: domain.StateOrderPersisted}
	o.publish(ctx, order, paymentdomain.StatusPending)

	payment, err := o.payments.Handle(ctx, paymentcommand.CreatePaymentCommand{
		OrderID:       order.OrderID,
		UserID:        req.OwnerID,
		Amount:        req.Total,
		Currency:      o.cfg.SourceCurrency,
		PaymentMethod: orderdomain.PaymentMethodCashOnDelivery,
		Status:        paymentdomain.StatusPending,
	})
	if err != nil {
		o.metrics.observe("payment", outcomeFailure)
		logger.Error(ctx).
			Err(err).
			Str("order_id", order.OrderID).
			Msg("Order saved but payment record failed")
		return result, fmt.Errorf("order %s saved but payment record failed: %w", order.OrderID, err)
	}
	o.metrics.observe("payment", outcomeSuccess)
	result.Payment = payment
	result.State = domain.StatePaymentRecorded

	logger.Info(ctx).
		Str("order_id", order.OrderID).
		Uint("payment_id", payment.ID).
		Str("state", string(result.State)).
		Msg("Cash on delivery order placed")
	return result, nil
}

// Reconcile runs the post-payment cart cleanup for either payment path
func (o *Orchestrator) Reconcile(ctx context.Context, ownerID string, items []cartcommand.PurchasedItem) (*cartcommand.ReconcileReport, error) {
	ctx, span := tracer.Start(ctx, "checkout.Reconcile",
		trace.WithAttributes(
			attribute.String("checkout.owner_id", ownerID),
			attribute.Int("checkout.items", len(items)),
		),
	)
	defer span.End()

	report, err := o.carts.Handle(ctx, cartcommand.ReconcileCommand{OwnerID: ownerID, Items: items})
	tracing.RecordError(span, err)
	if err != nil {
		o.metrics.observe("reconcile", outcomeFailure)
		return nil, err
	}

	o.metrics.observe("reconcile", outcomeSuccess)
	span.SetAttributes(
		attribute.String("checkout.state", string(domain.StateCartReconciled)),
		attribute.Int("checkout.stock_failures", len(report.StockFailures)),
	)
	return report, nil
}

// claim returns false only for a key that was already claimed. Store errors let the request through.
func (o *Orchestrator) claim(ctx context.Context, scope, key string) bool {
	if o.claims == nil || key == "" {
		return true
	}
	ok, err := o.claims.Claim(ctx, scope, key, o.cfg.ProcessingTTL)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("scope", scope).Msg("Idempotency store unavailable, processing without claim")
		return true
	}
	return ok
}

// complete turns the processing marker into a completion record
func (o *Orchestrator) complete(ctx context.Context, scope, key string) {
	if o.claims == nil || key == "" {
		return
	}
	if err := o.claims.Complete(ctx, scope, key, o.cfg.ClaimTTL); err != nil {
		logger.Warn(ctx).Err(err).Str("scope", scope).Msg("Failed to complete idempotency claim")
	}
}

func (o *Orchestrator) release(ctx context.Context, scope, key string) {
	if o.claims == nil || key == "" {
		return
	}
	if err := o.claims.Release(ctx, scope, key); err != nil {
		logger.Warn(ctx).Err(err).Str("scope", scope).Msg("Failed to release idempotency claim")
	}
}

func (o *Orchestrator) publish(ctx context.Context, order *orderdomain.Order, paymentStatus string) {
	if o.events == nil {
		return
	}
	event := kafka.OrderPlacedEvent{
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		Currency:      o.cfg.SourceCurrency,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: paymentStatus,
		Items:         make([]kafka.OrderedItem, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		event.Items = append(event.Items, kafka.OrderedItem{ProductID: string(it.ProductID), Quantity: it.Quantity})
	}
	if err := o.events.PublishOrderPlaced(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to publish order placed event")
	}
}

func toLineItems(items []domain.SessionItem) []ordercommand.LineItem {
	out := make([]ordercommand.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, ordercommand.LineItem{
			ProductID:            it.ProductID,
			Quantity:             it.Quantity,
			CustomizationOptions: it.CustomizationOptions,
			SubscriptionType:     it.SubscriptionType,
		})
	}
	return out
}
