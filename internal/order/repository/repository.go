package repository

import (
	"context"
	"errors"
	"regexp"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/pkg/database"
	"github.com/tair/nutribakery/pkg/tracing"
)

const entity = "order"

var tracer = otel.Tracer("order-repository")

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.Item{})
}

// Create inserts the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Create",
		trace.WithAttributes(
			attribute.String("order.id", order.OrderID),
			attribute.String("order.user_id", order.UserID),
			attribute.Int("order.items", len(order.Items)),
		),
	)
	defer span.End()

	err := database.MapError(r.db.WithContext(ctx).Create(order).Error, entity)
	tracing.RecordError(span, err)
	return err
}

func (r *GormOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, database.MapError(err, entity)
	}
	return &order, nil
}

func (r *GormOrderRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return false, database.MapError(err, entity)
	}
	return count > 0, nil
}

// FindHighestOrderID compares suffixes numerically and skips IDs whose suffix is not all digits,
// so NBO00012 outranks NBO000002 and NBOX000001 never counts
func (r *GormOrderRepository) FindHighestOrderID(ctx context.Context, prefix string) (string, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindHighestOrderID",
		trace.WithAttributes(attribute.String("order.prefix", prefix)),
	)
	defer span.End()

	var order domain.Order
	err := highestOrderIDQuery(r.db.WithContext(ctx), prefix).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		err = database.MapError(err, entity)
		tracing.RecordError(span, err)
		return "", err
	}
	span.SetAttributes(attribute.String("order.highest", order.OrderID))
	return order.OrderID, nil
}

func highestOrderIDQuery(db *gorm.DB, prefix string) *gorm.DB {
	return db.Model(&domain.Order{}).
		Select("order_id").
		Where("order_id ~ ?", "^"+regexp.QuoteMeta(prefix)+"[0-9]+$").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CAST(SUBSTRING(order_id FROM ?) AS NUMERIC) DESC, order_id DESC",
			Vars:               []interface{}{utf8.RuneCountInString(prefix) + 1},
			WithoutParentheses: true,
		}}).
		Limit(1)
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, database.MapError(err, entity)
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, database.MapError(err, entity)
}
