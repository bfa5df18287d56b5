package contact

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/database"
)

const entity = "message"

// Repository handles contact message persistence
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Message{})
}

func (r *Repository) Create(ctx context.Context, msg *Message) error {
	return database.MapError(r.db.WithContext(ctx).Create(msg).Error, entity)
}

// List returns messages newest first; limit <= 0 means all
func (r *Repository) List(ctx context.Context, limit int) ([]Message, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []Message
	err := q.Find(&msgs).Error
	return msgs, database.MapError(err, entity)
}

func (r *Repository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return database.MapError(res.Error, entity)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Message not found")
	}
	return nil
}
