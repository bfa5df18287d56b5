package domain

import (
	"context"
	"time"

	productdomain "github.com/tair/nutribakery/internal/product/domain"
)

// Payment methods an order can carry
const (
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "Cash on Delivery"

	DefaultSubscriptionType = "none"
)

// Item is an ordered line. ProductRef is the storage join key; ProductID is a snapshot
// of the display ID at order time.
type Item struct {
	ID                   uint                     `json:"-" gorm:"primaryKey"`
	OrderRowID           uint                     `json:"-" gorm:"not null;index"`
	ProductRef           productdomain.ProductRef `json:"product_ref" gorm:"type:uuid;not null;index"`
	ProductID            productdomain.ProductID  `json:"product_id" gorm:"size:32"`
	Quantity             int                      `json:"quantity" gorm:"not null"`
	CustomizationOptions map[string]interface{}   `json:"customization_options" gorm:"type:jsonb;serializer:json"`
	SubscriptionType     string                   `json:"subscription_type" gorm:"size:32;not null;default:none"`
}

func (Item) TableName() string {
	return "order_items"
}

// Order is immutable once created
type Order struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	OrderID       string    `json:"order_id" gorm:"uniqueIndex;not null;size:32"`
	UserID        string    `json:"user_id" gorm:"not null;index;size:32"`
	TotalAmount   float64   `json:"total_amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"not null;size:32"`
	Items         []Item    `json:"ordered_items" gorm:"foreignKey:OrderRowID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodStripe || m == PaymentMethodCashOnDelivery
}

// OrderRepository defines the contract for order data access.
// Create returns an apperr Conflict error when the order ID is taken.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByOrderID(ctx context.Context, orderID string) (*Order, error)
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
	// FindHighestOrderID returns the numerically highest order ID with prefix, or "" when none exist
	FindHighestOrderID(ctx context.Context, prefix string) (string, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUserID(ctx context.Context, userID string) ([]Order, error)
}

// ProductResolver translates display IDs into catalog references
type ProductResolver interface {
	ResolveRef(ctx context.Context, id productdomain.ProductID) (productdomain.ProductRef, error)
}
