package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/nutribakery/pkg/logger"
)

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)

// Publisher sends order events synchronously so checkout can log a failed send
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "nutribakery"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond
	// idempotent producers need a single in-flight request
	cfg.Net.MaxOpenRequests = 1
	cfg.Version = sarama.V2_6_0_0
	return cfg
}

func NewPublisher(brokers []string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create order event producer: %w", err)
	}
	logger.Logger.Info().Strs("brokers", brokers).Msg("Order event publisher ready")
	return NewPublisherWithProducer(producer, brokers), nil
}

// NewPublisherWithProducer is used by tests to inject a mock producer
func NewPublisherWithProducer(producer sarama.SyncProducer, brokers []string) *Publisher {
	return &Publisher{producer: producer, brokers: brokers}
}

// PublishOrderPlaced fills in the envelope fields and sends the event keyed by order ID
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if event.EventID == "" {
		event.EventID = "evt_" + uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.EventType = EventTypeOrderPlaced

	ctx, span := otel.Tracer("nutribakery/kafka").Start(ctx, "order_placed publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", TopicOrderPlaced),
			attribute.String("messaging.message.id", event.EventID),
			attribute.String("order.id", event.OrderID),
			attribute.String("order.payment_method", event.PaymentMethod),
		),
	)
	defer span.End()

	body, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		return fmt.Errorf("failed to encode %s event: %w", event.EventType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicOrderPlaced,
		Key:     sarama.StringEncoder(event.OrderID),
		Value:   sarama.ByteEncoder(body),
		Headers: envelopeHeaders(ctx, event.EventType, event.EventID),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send")
		return fmt.Errorf("failed to publish order %s: %w", event.OrderID, err)
	}
	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("order_id", event.OrderID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Order placed event published")
	return nil
}

// envelopeHeaders carries the event type and id plus the W3C trace context
func envelopeHeaders(ctx context.Context, eventType, eventID string) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]sarama.RecordHeader, 0, len(carrier)+2)
	headers = append(headers,
		sarama.RecordHeader{Key: []byte(headerEventType), Value: []byte(eventType)},
		sarama.RecordHeader{Key: []byte(headerEventID), Value: []byte(eventID)},
	)
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	return headers
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
