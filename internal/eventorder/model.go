package eventorder

import "time"

const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"

	DeliveryNotDelivered   = "Not Delivered"
	DeliveryOutForDelivery = "Out for Delivery"
	DeliveryDelivered      = "Delivered"

	// MaxImages caps both the event images and the per-product images
	MaxImages = 5
)

var (
	paymentStatuses  = map[string]bool{PaymentPending: true, PaymentCompleted: true, PaymentFailed: true}
	deliveryStatuses = map[string]bool{DeliveryNotDelivered: true, DeliveryOutForDelivery: true, DeliveryDelivered: true}
)

// Product is one requested item; Image is the URL of its reference picture, if any
type Product struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// EventOrder is a custom order for an event
type EventOrder struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email" gorm:"not null"`
	EventType      string    `json:"event_type" gorm:"not null"`
	Products       []Product `json:"products" gorm:"type:jsonb;serializer:json"`
	Instructions   string    `json:"instructions"`
	Date           time.Time `json:"date" gorm:"not null"`
	Images         []string  `json:"images" gorm:"type:jsonb;serializer:json"`
	PaymentStatus  string    `json:"payment_status" gorm:"not null;default:'Pending'"`
	DeliveryStatus string    `json:"delivery_status" gorm:"not null;default:'Not Delivered'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (EventOrder) TableName() string {
	return "event_orders"
}

// CreateRequest is the decoded multipart form with uploads already stored
type CreateRequest struct {
	Name          string
	Email         string
	EventType     string
	Instructions  string
	Date          string
	Products      []Product
	ProductImages []string
	Images        []string
}
