package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/nutribakery/internal/payment/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/database"
	"github.com/tair/nutribakery/pkg/tracing"
)

const entity = "payment"

var tracer = otel.Tracer("payment-repository")

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	ctx, span := tracer.Start(ctx, "repository.Payment.Create",
		trace.WithAttributes(
			attribute.String("payment.order_id", payment.OrderID),
			attribute.String("payment.method", payment.PaymentMethod),
			attribute.String("payment.status", payment.Status),
		),
	)
	defer span.End()

	err := database.MapError(r.db.WithContext(ctx).Create(payment).Error, entity)
	tracing.RecordError(span, err)
	return err
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, database.MapError(err, entity)
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, database.MapError(err, entity)
}

func (r *GormPaymentRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, database.MapError(err, entity)
}

func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, id uint, from, to string) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "repository.Payment.UpdateStatus",
		trace.WithAttributes(
			attribute.Int("payment.id", int(id)),
			attribute.String("payment.status_from", from),
			attribute.String("payment.status_to", to),
		),
	)
	defer span.End()

	var payment domain.Payment
	result := r.db.WithContext(ctx).
		Model(&payment).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		err := database.MapError(result.Error, entity)
		tracing.RecordError(span, err)
		return nil, err
	}
	if result.RowsAffected == 0 {
		err := apperr.Conflict("payment status changed concurrently", nil)
		tracing.RecordError(span, err)
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) SumByStatus(ctx context.Context, status string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, database.MapError(err, entity)
}
