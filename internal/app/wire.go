//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/tair/nutribakery/internal/config"
)

// InitializeServer wires every module on top of the shared infrastructure
func InitializeServer(cfg *config.Config, infra *Infra) (*Server, error) {
	wire.Build(
		AllHandlersSet,
		NewServer,
	)
	return nil, nil
}
