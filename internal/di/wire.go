//go:build wireinject
// +build wireinject

package di

import (
	"TradeCommittee/pkg/config"
	"TradeCommittee/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisCache,
		ProvideCacheService,

		// Repositories
		ProvideDecisionStore,
		ProvideDecisionPublisher,
		ProvideSnapshotStore,
		ProvideCatalystCalendar,

		// Committee core
		ProvideCommitteeParams,
		ProvideCommittee,
		ProvideExclusionRules,

		// Use cases
		ProvideDecisionProcessor,
		ProvideCommitteeEvaluator,
		ProvideScanner,
		ProvideQuoteCollector,
		ProvideCandidatesHandler,
		ProvideScanQueue,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
