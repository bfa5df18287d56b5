package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/nutribakery/internal/cart/domain"
	"github.com/tair/nutribakery/pkg/database"
	"github.com/tair/nutribakery/pkg/tracing"
)

var tracer = otel.Tracer("cart-repository")

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Cart{})
}

func (r *GormCartRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Cart, error) {
	ctx, span := tracer.Start(ctx, "repository.Cart.FindByOwner",
		trace.WithAttributes(attribute.String("cart.owner_id", ownerID)),
	)
	defer span.End()

	var cart domain.Cart
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&cart).Error; err != nil {
		err = database.MapError(err, "cart")
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("cart.items", len(cart.Items)))
	return &cart, nil
}

// Save inserts a new cart or rewrites the whole row, items included
func (r *GormCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, span := tracer.Start(ctx, "repository.Cart.Save",
		trace.WithAttributes(
			attribute.String("cart.owner_id", cart.OwnerID),
			attribute.Int("cart.items", len(cart.Items)),
			attribute.Float64("cart.total_amount", cart.TotalAmount),
		),
	)
	defer span.End()

	err := database.MapError(r.db.WithContext(ctx).Save(cart).Error, "cart")
	tracing.RecordError(span, err)
	return err
}
