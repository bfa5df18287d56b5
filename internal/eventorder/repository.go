package eventorder

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/pkg/database"
)

const entity = "event order"

// Repository handles event order persistence
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&EventOrder{})
}

func (r *Repository) Create(ctx context.Context, order *EventOrder) error {
	return database.MapError(r.db.WithContext(ctx).Create(order).Error, entity)
}

func (r *Repository) GetAll(ctx context.Context) ([]EventOrder, error) {
	var orders []EventOrder
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, database.MapError(err, entity)
}

// UpdateField sets one status column and returns the updated row
func (r *Repository) UpdateField(ctx context.Context, id uint, column, value string) (*EventOrder, error) {
	var order EventOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update(column, value).Error
	})
	if err != nil {
		return nil, database.MapError(err, entity)
	}
	return &order, nil
}
