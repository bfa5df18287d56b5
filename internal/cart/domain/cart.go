package domain

import (
	"context"
	"time"

	productdomain "github.com/tair/nutribakery/internal/product/domain"
)

// Item is one cart line, keyed by the product display ID
type Item struct {
	ProductID            productdomain.ProductID `json:"product_id"`
	Quantity             int                     `json:"quantity"`
	CustomizationOptions map[string]interface{}  `json:"customization_options,omitempty"`
	SubscriptionType     string                  `json:"subscription_type,omitempty"`
	DeliveryDay          string                  `json:"delivery_day,omitempty"`
}

// Cart is the single cart an owner has
type Cart struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	OwnerID     string    `json:"user_id" gorm:"column:owner_id;not null;uniqueIndex;size:32"`
	Items       []Item    `json:"items" gorm:"type:jsonb;serializer:json"`
	TotalAmount float64   `json:"total_amount" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Cart) TableName() string {
	return "carts"
}

// FindItem returns the index of the line for id, or -1
func (c *Cart) FindItem(id productdomain.ProductID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == id {
			return i
		}
	}
	return -1
}

// AddItem increments an existing line, replacing its customization, or appends a new line
func (c *Cart) AddItem(id productdomain.ProductID, qty int, customization map[string]interface{}) {
	if i := c.FindItem(id); i >= 0 {
		c.Items[i].Quantity += qty
		c.Items[i].CustomizationOptions = customization
		return
	}
	c.Items = append(c.Items, Item{
		ProductID:            id,
		Quantity:             qty,
		CustomizationOptions: customization,
	})
}

// RemoveItem drops the line for id and reports whether it existed
func (c *Cart) RemoveItem(id productdomain.ProductID) bool {
	i := c.FindItem(id)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartRepository defines the contract for cart data access.
// FindByOwner returns an apperr NotFound error when the owner has no cart.
type CartRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
}

// Catalog is the read side of the product store the cart prices against
type Catalog interface {
	FindByProductID(ctx context.Context, id productdomain.ProductID) (*productdomain.Product, error)
}

// StockKeeper decrements stock after a purchase
type StockKeeper interface {
	DecrementStock(ctx context.Context, id productdomain.ProductID, qty int) (*productdomain.Product, error)
}
