package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/pkg/database"
)

const entity = "blog post"

// Repository handles blog persistence
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new blog repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Blog{})
}

func (r *Repository) Create(ctx context.Context, blog *Blog) error {
	return database.MapError(r.db.WithContext(ctx).Create(blog).Error, entity)
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*Blog, error) {
	var blog Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, database.MapError(err, entity)
	}
	return &blog, nil
}

// GetAll returns posts newest first
func (r *Repository) GetAll(ctx context.Context) ([]Blog, error) {
	var blogs []Blog
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&blogs).Error
	return blogs, database.MapError(err, entity)
}
