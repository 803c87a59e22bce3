//go:build wireinject
// +build wireinject

package di

import (
	"StayPulse/pkg/config"
	"StayPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Listing table
		ProvideListingSource,
		ProvideListingTable,

		// Use cases
		ProvideAggregator,
		ProvideChartBuilder,
		ProvideDashboard,

		// Side channels
		ProvidePublisher,
		ProvideSnapshotCache,
		ProvideHub,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
