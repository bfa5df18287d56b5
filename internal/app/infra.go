// Package app assembles the NutriBakery service from its modules and shared infrastructure.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/nutribakery/internal/config"
	"github.com/tair/nutribakery/kafka"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/database"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/mailer"
	"github.com/tair/nutribakery/pkg/upload"
)

// Infra holds the process wide connections every module shares.
// Redis and Publisher are nil when their addresses are not configured.
type Infra struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *kafka.Publisher
	Mailer    mailer.Sender
	Uploads   *upload.Store
	Tokens    *auth.TokenManager
	Registry  *prometheus.Registry
}

// NewInfra opens the database and the optional redis and kafka connections
func NewInfra(ctx context.Context, cfg *config.Config) (*Infra, error) {
	db, err := database.NewGormConnection(database.Config{
		Host:       cfg.DB.Host,
		Port:       cfg.DB.Port,
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		DBName:     cfg.DB.Name,
		SSLMode:    cfg.DB.SSLMode,
		LogQueries: cfg.IsDevelopment() && cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	infra := &Infra{
		DB:       db,
		Tokens:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Registry: prometheus.NewRegistry(),
		Mailer: mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.User,
		}),
	}
	infra.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	infra.Uploads, err = upload.NewStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL)
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			// Rate limiting and claims degrade to pass-through without redis
			logger.Warn(ctx).Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, continuing without it")
			_ = client.Close()
		} else {
			infra.Redis = client
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Warn(ctx).Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka unavailable, order events disabled")
		} else {
			infra.Publisher = publisher
		}
	}

	return infra, nil
}

// Close releases every connection, collecting the errors
func (i *Infra) Close() error {
	var errs []error
	if i.Publisher != nil {
		errs = append(errs, i.Publisher.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
