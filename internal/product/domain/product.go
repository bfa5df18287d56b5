package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductID is the public display key, e.g. NBP_001
type ProductID string

// ProductRef is the internal storage key carried by order lines
type ProductRef string

// NewProductRef allocates a fresh internal key
func NewProductRef() ProductRef {
	return ProductRef(uuid.NewString())
}

// Product statuses
const (
	StatusActive     = "Active"
	StatusOutOfStock = "Out of Stock"
	StatusPending    = "Pending"
)

// Product represents the catalog entity
type Product struct {
	ID          uint       `json:"-" gorm:"primaryKey"`
	ProductID   ProductID  `json:"product_id" gorm:"column:product_id;not null;uniqueIndex;size:32"`
	Ref         ProductRef `json:"ref" gorm:"column:ref;type:uuid;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Price       float64    `json:"price" gorm:"not null"`
	Category    string     `json:"category" gorm:"index"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	ImageURL    string     `json:"image_url"`
	Status      string     `json:"status" gorm:"not null;default:'Pending'"`
	IsSpecialty bool       `json:"is_specialty" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// StatusForStock derives the status a product must carry for a stock level
func StatusForStock(stock int) string {
	if stock > 0 {
		return StatusActive
	}
	return StatusOutOfStock
}

// SetStock assigns stock and keeps status consistent with it
func (p *Product) SetStock(stock int) {
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
	p.Status = StatusForStock(stock)
}

// IsAvailable checks if product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0 && p.Status == StatusActive
}

// ProductRepository defines the contract for product data access.
// Lookups that miss return an apperr NotFound error.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByProductID(ctx context.Context, id ProductID) (*Product, error)
	FindByRef(ctx context.Context, ref ProductRef) (*Product, error)
	FindByRefs(ctx context.Context, refs []ProductRef) ([]Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	FindSpecialties(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id ProductID) error
	// DecrementStock subtracts qty floored at zero and re-derives status in one statement
	DecrementStock(ctx context.Context, id ProductID, qty int) (*Product, error)
	Count(ctx context.Context) (int64, error)
}
