// Package cli holds the cobra commands of the shop binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tair/nutribakery/internal/config"
	"github.com/tair/nutribakery/pkg/logger"
)

const serviceName = "nutribakery"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "NutriBakery storefront backend",
	Long: `NutriBakery serves the bakery storefront API: catalog, carts, orders,
hosted and cash on delivery checkout, accounts and the content pages.

Settings come from an optional config.yaml and the environment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ./config.yaml or /etc/nutribakery/config.yaml)")
}

// loadConfig reads the configuration and initializes the global logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
