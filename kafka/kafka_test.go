package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishOrderPlaced(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()

	var sent OrderPlacedEvent
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicOrderPlaced, msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "NBO00001", string(key))

		var typeHeader string
		for _, h := range msg.Headers {
			if string(h.Key) == "event_type" {
				typeHeader = string(h.Value)
			}
		}
		assert.Equal(t, EventTypeOrderPlaced, typeHeader)

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		return json.Unmarshal(value, &sent)
	})

	p := NewPublisherWithProducer(producer, nil)
	err := p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{
		OrderID:       "NBO00001",
		UserID:        "NBU_001",
		TotalAmount:   2400,
		PaymentMethod: "Cash on Delivery",
		Items:         []OrderedItem{{ProductID: "NBP_001", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sent.EventID)
	assert.Equal(t, EventTypeOrderPlaced, sent.EventType)
	assert.False(t, sent.Timestamp.IsZero())
	assert.Equal(t, []OrderedItem{{ProductID: "NBP_001", Quantity: 2}}, sent.Items)
}

func TestPublishOrderPlacedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := NewPublisherWithProducer(producer, nil).PublishOrderPlaced(context.Background(), OrderPlacedEvent{OrderID: "NBO00002"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func message(eventType string, value []byte) *sarama.ConsumerMessage {
	msg := &sarama.ConsumerMessage{Topic: TopicOrderPlaced, Value: value}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte("evt_1")},
		}
	}
	return msg
}

func TestDispatch(t *testing.T) {
	body, err := json.Marshal(OrderPlacedEvent{EventID: "evt_1", OrderID: "NBO00003"})
	require.NoError(t, err)

	c := newConsumer(nil, nil, "test", []string{TopicOrderPlaced})
	var got []string
	c.RegisterHandler(EventTypeOrderPlaced, func(_ context.Context, e OrderPlacedEvent) error {
		got = append(got, e.OrderID)
		if e.OrderID == "NBO00004" {
			return errors.New("smtp down")
		}
		return nil
	})

	ctx := context.Background()
	require.NoError(t, c.dispatch(ctx, message(EventTypeOrderPlaced, body)))
	assert.Equal(t, []string{"NBO00003"}, got)

	assert.Error(t, c.dispatch(ctx, message("", body)), "missing header")
	assert.Error(t, c.dispatch(ctx, message("order.cancelled", body)), "no handler")
	assert.Error(t, c.dispatch(ctx, message(EventTypeOrderPlaced, []byte("{"))), "bad json")

	failing, err := json.Marshal(OrderPlacedEvent{EventID: "evt_2", OrderID: "NBO00004"})
	require.NoError(t, err)
	assert.Error(t, c.dispatch(ctx, message(EventTypeOrderPlaced, failing)))
}
