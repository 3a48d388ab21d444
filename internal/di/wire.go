//go:build wireinject
// +build wireinject

package di

import (
	"TradeLens/pkg/config"
	"TradeLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Repositories
		ProvideEventStore,
		ProvideFeedStream,

		// Use cases
		ProvideEventIngestor,
		ProvideJournalEventsHandler,
		ProvideFeedCollector,
		ProvideDashboardUseCase,

		// Transport
		ProvideKafkaConsumer,
		ProvideHTTPHandler,

		ProvideApp,
	)
	return nil, nil
}
