package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/database"
)

const entity = "product"

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return database.MapError(r.db.WithContext(ctx).Create(product).Error, entity)
}

func (r *GormProductRepository) FindByProductID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", id).First(&product).Error
	if err != nil {
		return nil, database.MapError(err, entity)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByRef(ctx context.Context, ref domain.ProductRef) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("ref = ?", ref).First(&product).Error
	if err != nil {
		return nil, database.MapError(err, entity)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByRefs(ctx context.Context, refs []domain.ProductRef) ([]domain.Product, error) {
	var products []domain.Product
	if len(refs) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("ref IN ?", refs).Find(&products).Error
	return products, database.MapError(err, entity)
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, database.MapError(err, entity)
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("created_at DESC").
		Find(&products).Error
	return products, database.MapError(err, entity)
}

func (r *GormProductRepository) FindSpecialties(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Where("is_specialty = ?", true).Find(&products).Error
	return products, database.MapError(err, entity)
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return database.MapError(r.db.WithContext(ctx).Save(product).Error, entity)
}

func (r *GormProductRepository) Delete(ctx context.Context, id domain.ProductID) error {
	result := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&domain.Product{})
	if result.Error != nil {
		return database.MapError(result.Error, entity)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

// DecrementStock relies on UPDATE evaluating every SET expression against the old row,
// so the CASE sees the pre-decrement stock.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id domain.ProductID, qty int) (*domain.Product, error) {
	var product domain.Product
	result := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("product_id = ?", id).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("GREATEST(stock - ?, 0)", qty),
			"status": gorm.Expr("CASE WHEN stock - ? > 0 THEN ? ELSE ? END",
				qty, domain.StatusActive, domain.StatusOutOfStock),
		})
	if result.Error != nil {
		return nil, database.MapError(result.Error, entity)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("product not found")
	}
	return &product, nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, database.MapError(err, entity)
}
