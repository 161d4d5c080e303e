//go:build wireinject
// +build wireinject

package di

import (
	"FlipPulse/pkg/config"
	"FlipPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideMarketSource,

		// Use cases
		ProvideParams,
		ProvideRefresher,

		// HTTP
		ProvideFlipsHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
