//go:build wireinject
// +build wireinject

package di

import (
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideClock,
		ProvideMetrics,

		// Providers
		ProvideQuoteProvider,
		ProvideAIProvider,
		ProvideSessionStore,
		ProvideKafkaProducer,
		ProvideAnalysisPublisher,

		// Use cases
		ProvideGateway,
		ProvideRegistry,
		ProvideOrchestrator,
		ProvideSessionManager,

		// Transport
		ProvideHTTPHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
