package kafka

import "time"

// OrderedItem is one line of a placed order
type OrderedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderPlacedEvent is published once an order is persisted by either payment path
type OrderPlacedEvent struct {
	EventID       string        `json:"event_id"`
	EventType     string        `json:"event_type"`
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	TotalAmount   float64       `json:"total_amount"`
	Currency      string        `json:"currency"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus string        `json:"payment_status"`
	Items         []OrderedItem `json:"items"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// Kafka topics
const (
	TopicOrderPlaced = "order-placed"
)
