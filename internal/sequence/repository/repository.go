package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/nutribakery/internal/sequence/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/tracing"
)

var tracer = otel.Tracer("sequence-repository")

type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

func (r *GormCounterRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Counter{})
}

// Increment runs a single upsert so concurrent callers never observe the same value:
// INSERT ... ON CONFLICT (name) DO UPDATE SET value = counters.value + 1 RETURNING value
func (r *GormCounterRepository) Increment(ctx context.Context, name string) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Counter.Increment",
		trace.WithAttributes(attribute.String("counter.name", name)),
	)
	defer span.End()

	counter := domain.Counter{Name: name, Value: 1}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "name"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"value":      gorm.Expr("counters.value + 1"),
					"updated_at": gorm.Expr("NOW()"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "value"}}},
		).
		Create(&counter).Error
	if err != nil {
		tracing.RecordError(span, err)
		return 0, apperr.Storage("error generating unique ID", err)
	}

	span.SetAttributes(attribute.Int64("counter.value", counter.Value))
	return counter.Value, nil
}
