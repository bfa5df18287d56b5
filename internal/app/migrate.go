package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/internal/blog"
	cartrepo "github.com/tair/nutribakery/internal/cart/repository"
	"github.com/tair/nutribakery/internal/contact"
	"github.com/tair/nutribakery/internal/eventorder"
	orderrepo "github.com/tair/nutribakery/internal/order/repository"
	paymentrepo "github.com/tair/nutribakery/internal/payment/repository"
	productrepo "github.com/tair/nutribakery/internal/product/repository"
	"github.com/tair/nutribakery/internal/review"
	seqrepo "github.com/tair/nutribakery/internal/sequence/repository"
	userrepo "github.com/tair/nutribakery/internal/user/repository"
	"github.com/tair/nutribakery/pkg/logger"
)

type migrator interface {
	AutoMigrate() error
}

// Migrate creates or updates every table the service owns
func Migrate(ctx context.Context, db *gorm.DB) error {
	steps := []struct {
		name string
		m    migrator
	}{
		{"counters", seqrepo.NewGormCounterRepository(db)},
		{"products", productrepo.NewGormProductRepository(db)},
		{"users", userrepo.NewGormUserRepository(db)},
		{"carts", cartrepo.NewGormCartRepository(db)},
		{"orders", orderrepo.NewGormOrderRepository(db)},
		{"payments", paymentrepo.NewGormPaymentRepository(db)},
		{"blogs", blog.NewRepository(db)},
		{"reviews", review.NewRepository(db)},
		{"contact_messages", contact.NewRepository(db)},
		{"event_orders", eventorder.NewRepository(db)},
	}

	for _, step := range steps {
		if err := step.m.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", step.name, err)
		}
		logger.Debug(ctx).Str("table", step.name).Msg("Migrated")
	}
	logger.Info(ctx).Int("tables", len(steps)).Msg("Database migrations completed")
	return nil
}
