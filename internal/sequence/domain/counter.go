package domain

import (
	"context"
	"time"
)

// Counter is a durable named sequence. Value only ever increases.
type Counter struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex;size:64"`
	Value     int64     `json:"value" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Counter) TableName() string {
	return "counters"
}

// Well known counter names
const (
	PrefixProduct = "NBP"
	PrefixUser    = "NBU"
)

// CounterRepository increments counters atomically, creating them on first use
type CounterRepository interface {
	Increment(ctx context.Context, name string) (int64, error)
}
