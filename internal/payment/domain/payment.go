package domain

import (
	"context"
	"time"
)

// Payment records money owed or received for an order
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       string    `json:"order_id" gorm:"index;size:32"`
	UserID        string    `json:"user_id" gorm:"not null;index;size:32"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"not null;default:'LKR';size:3"`
	PaymentMethod string    `json:"payment_method" gorm:"not null;size:32"`
	Status        string    `json:"payment_status" gorm:"column:status;not null;default:'Completed';index;size:16"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// Payment statuses
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"

	DefaultCurrency = "LKR"
)

// ValidStatus reports whether s is a known status
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

// CanTransition allows Pending -> Completed and Pending -> Failed only
func CanTransition(from, to string) bool {
	return from == StatusPending && (to == StatusCompleted || to == StatusFailed)
}

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uint) (*Payment, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]Payment, error)
	FindAll(ctx context.Context, limit, offset int) ([]Payment, error)
	// UpdateStatus changes the status only while it still equals from; a lost race is an apperr Conflict
	UpdateStatus(ctx context.Context, id uint, from, to string) (*Payment, error)
	SumByStatus(ctx context.Context, status string) (float64, error)
}
