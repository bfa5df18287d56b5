package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/nutribakery/pkg/logger"
)

// EventHandler reacts to a decoded order event
type EventHandler func(ctx context.Context, event OrderPlacedEvent) error

// Consumer joins a consumer group and routes messages by their event_type header.
// A failed handler is logged and the offset still advances, so one bad message
// never blocks the partition.
type Consumer struct {
	group   sarama.ConsumerGroup
	brokers []string
	groupID string
	topics  []string

	mu       sync.RWMutex
	handlers map[string]EventHandler
}

func consumerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "nutribakery"
	cfg.Version = sarama.V2_6_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Offsets.AutoCommit.Interval = time.Second
	cfg.Consumer.Return.Errors = true
	return cfg
}

func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	group, err := sarama.NewConsumerGroup(brokers, groupID, consumerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to join consumer group %s: %w", groupID, err)
	}
	return newConsumer(group, brokers, groupID, topics), nil
}

func newConsumer(group sarama.ConsumerGroup, brokers []string, groupID string, topics []string) *Consumer {
	return &Consumer{
		group:    group,
		brokers:  brokers,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}
}

// RegisterHandler replaces any handler already bound to eventType
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.mu.Lock()
	c.handlers[eventType] = handler
	c.mu.Unlock()
}

// Start consumes in the background until ctx is cancelled or the group is closed
func (c *Consumer) Start(ctx context.Context) error {
	if c.group == nil {
		return errors.New("consumer group not initialised")
	}

	go func() {
		for {
			err := c.group.Consume(ctx, c.topics, groupHandler{c})
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Logger.Error().Err(err).Str("group_id", c.groupID).Msg("Consume session ended, rejoining")
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Warn().Err(err).Str("group_id", c.groupID).Msg("Consumer group error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Order event consumer started")
	return nil
}

func (c *Consumer) Close() error {
	if c.group == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.c.process(session.Context(), msg)
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg *sarama.ConsumerMessage) {
	carrier := propagation.MapCarrier{}
	for _, h := range msg.Headers {
		carrier[string(h.Key)] = string(h.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	ctx, span := otel.Tracer("nutribakery/kafka").Start(ctx, msg.Topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source.name", msg.Topic),
			attribute.Int64("messaging.kafka.partition", int64(msg.Partition)),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	if err := c.dispatch(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch")
		logger.Error(ctx).
			Err(err).
			Str("topic", msg.Topic).
			Int32("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("Order event dropped")
	}
}

func headerValue(msg *sarama.ConsumerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

// dispatch decodes msg according to its event_type header and runs the bound handler
func (c *Consumer) dispatch(ctx context.Context, msg *sarama.ConsumerMessage) error {
	eventType := headerValue(msg, headerEventType)
	if eventType == "" {
		return errors.New("message has no event_type header")
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("event.type", eventType),
		attribute.String("messaging.message.id", headerValue(msg, headerEventID)),
	)

	c.mu.RLock()
	handler, ok := c.handlers[eventType]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler for event type %q", eventType)
	}

	if eventType != EventTypeOrderPlaced {
		return fmt.Errorf("cannot decode event type %q", eventType)
	}
	var event OrderPlacedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to decode %s: %w", eventType, err)
	}
	if err := handler(ctx, event); err != nil {
		return fmt.Errorf("order %s: %w", event.OrderID, err)
	}

	logger.Debug(ctx).Str("event_id", event.EventID).Str("order_id", event.OrderID).Msg("Order event handled")
	return nil
}
