package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/tracing"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository decorates a ProductRepository with spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.id", string(product.ProductID)),
			attribute.String("product.category", product.Category),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, product)
	tracing.RecordError(span, err)
	return err
}

func (r *TracingProductRepository) FindByProductID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByProductID",
		trace.WithAttributes(attribute.String("product.id", string(id))),
	)
	defer span.End()

	product, err := r.next.FindByProductID(ctx, id)
	tracing.RecordError(span, err)
	return product, err
}

func (r *TracingProductRepository) FindByRef(ctx context.Context, ref domain.ProductRef) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByRef",
		trace.WithAttributes(attribute.String("product.ref", string(ref))),
	)
	defer span.End()

	product, err := r.next.FindByRef(ctx, ref)
	tracing.RecordError(span, err)
	return product, err
}

func (r *TracingProductRepository) FindByRefs(ctx context.Context, refs []domain.ProductRef) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByRefs",
		trace.WithAttributes(attribute.Int("product.ref_count", len(refs))),
	)
	defer span.End()

	products, err := r.next.FindByRefs(ctx, refs)
	tracing.RecordError(span, err)
	return products, err
}

func (r *TracingProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindAll")
	defer span.End()

	products, err := r.next.FindAll(ctx)
	tracing.RecordError(span, err)
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, err
}

func (r *TracingProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByCategory",
		trace.WithAttributes(attribute.String("product.category", category)),
	)
	defer span.End()

	products, err := r.next.FindByCategory(ctx, category)
	tracing.RecordError(span, err)
	return products, err
}

func (r *TracingProductRepository) FindSpecialties(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindSpecialties")
	defer span.End()

	products, err := r.next.FindSpecialties(ctx)
	tracing.RecordError(span, err)
	return products, err
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(
			attribute.String("product.id", string(product.ProductID)),
			attribute.String("product.status", product.Status),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, product)
	tracing.RecordError(span, err)
	return err
}

func (r *TracingProductRepository) Delete(ctx context.Context, id domain.ProductID) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Delete",
		trace.WithAttributes(attribute.String("product.id", string(id))),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	tracing.RecordError(span, err)
	return err
}

func (r *TracingProductRepository) DecrementStock(ctx context.Context, id domain.ProductID, qty int) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.DecrementStock",
		trace.WithAttributes(
			attribute.String("product.id", string(id)),
			attribute.Int("product.quantity", qty),
		),
	)
	defer span.End()

	product, err := r.next.DecrementStock(ctx, id, qty)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("product.stock", product.Stock),
		attribute.String("product.status", product.Status),
	)
	return product, nil
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	tracing.RecordError(span, err)
	return count, err
}
