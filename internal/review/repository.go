package review

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/pkg/database"
)

const entity = "review"

// Repository handles review persistence
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Review{})
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	return database.MapError(r.db.WithContext(ctx).Create(review).Error, entity)
}

func (r *Repository) GetAll(ctx context.Context) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, database.MapError(err, entity)
}
