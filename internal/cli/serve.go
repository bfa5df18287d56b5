package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tair/nutribakery/internal/app"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/tracing"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on HTTP_PORT. When KAFKA_BROKERS is set the order
notification consumer runs alongside it. Tables are migrated first unless
--skip-migrate is given.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run database migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		SampleRatio:    1,
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Warn(shutdownCtx).Err(err).Msg("Failed to flush traces")
			}
		}()
	}

	infra, err := app.NewInfra(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.Warn(context.Background()).Err(err).Msg("Failed to close infrastructure")
		}
	}()

	if !skipMigrate {
		if err := app.Migrate(ctx, infra.DB); err != nil {
			return err
		}
	}

	server, err := app.InitializeServer(cfg, infra)
	if err != nil {
		return fmt.Errorf("failed to wire server: %w", err)
	}
	return server.Run(ctx)
}
