//go:build wireinject
// +build wireinject

package di

import (
	"RankPull/pkg/config"
	"RankPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideLeaderboardSource,
		ProvideNotifier,
		ProvideKafkaProducer,
		ProvideResultPublisher,
		ProvideCache,

		// Use cases
		ProvideReportBuilder,
		ProvideReportRunner,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
