package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/tracing"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository decorates a UserRepository with spans
type TracingUserRepository struct {
	next domain.UserRepository
}

func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.User.Create",
		trace.WithAttributes(
			attribute.String("user.id", user.UserID),
			attribute.String("user.username", user.Username),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, user)
	tracing.RecordError(span, err)
	return err
}

func (r *TracingUserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByUserID",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	user, err := r.next.FindByUserID(ctx, userID)
	tracing.RecordError(span, err)
	return user, err
}

func (r *TracingUserRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByUserIDs",
		trace.WithAttributes(attribute.Int("user.id_count", len(userIDs))),
	)
	defer span.End()

	users, err := r.next.FindByUserIDs(ctx, userIDs)
	tracing.RecordError(span, err)
	return users, err
}

func (r *TracingUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	user, err := r.next.FindByUsername(ctx, username)
	tracing.RecordError(span, err)
	return user, err
}

func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByEmail")
	defer span.End()

	user, err := r.next.FindByEmail(ctx, email)
	tracing.RecordError(span, err)
	return user, err
}

func (r *TracingUserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByResetToken")
	defer span.End()

	user, err := r.next.FindByResetToken(ctx, token)
	tracing.RecordError(span, err)
	return user, err
}

func (r *TracingUserRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	users, err := r.next.FindAll(ctx, limit, offset)
	tracing.RecordError(span, err)
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, err
}

func (r *TracingUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.User.Update",
		trace.WithAttributes(
			attribute.String("user.id", user.UserID),
			attribute.String("user.role", user.Role),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, user)
	tracing.RecordError(span, err)
	return err
}

func (r *TracingUserRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.User.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	tracing.RecordError(span, err)
	return count, err
}
