//go:build wireinject
// +build wireinject

package di

import (
	"StockMind/pkg/config"
	"StockMind/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Data acquisition
		ProvideProviders,
		ProvideQuoteCache,
		ProvideFetcher,

		// Analysis
		ProvideSentiment,
		ProvidePredictor,
		ProvideAdvisor,

		// Transport
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
