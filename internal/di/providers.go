package di

import (
	"context"
	"fmt"

	"StayPulse/internal/domain/models"
	"StayPulse/internal/domain/repository"
	"StayPulse/internal/handler/api"
	internalrepo "StayPulse/internal/repository"
	icache "StayPulse/internal/service/cache"
	"StayPulse/internal/service/stream"
	"StayPulse/internal/usecase"
	pkgch "StayPulse/pkg/clickhouse"
	"StayPulse/pkg/config"
	xhttp "StayPulse/pkg/http"
	pkgkafka "StayPulse/pkg/kafka"
	applogger "StayPulse/pkg/logger"
	"StayPulse/pkg/metrics"
	"StayPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideListingSource creates the configured listing source.
func ProvideListingSource(cfg *config.Config, l *applogger.Logger) (repository.ListingSource, error) {
	switch cfg.Source.Type {
	case "csv":
		return internalrepo.NewCSVListingSource(cfg.Source.CSVPath, l), nil
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		return internalrepo.NewClickHouseListingSource(client, cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
	}
}

// ProvideListingTable loads the listing table once at startup.
func ProvideListingTable(cfg *config.Config, source repository.ListingSource) (*usecase.ListingTable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.LoadTimeout)
	defer cancel()

	listings, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	return usecase.NewListingTable(listings), nil
}

// ProvideAggregator creates the statistics aggregator.
func ProvideAggregator(cfg *config.Config) *usecase.Aggregator {
	return usecase.NewAggregator(cfg.Dashboard.NonReviewingGuestShare)
}

// ProvideChartBuilder creates the chart payload builder.
func ProvideChartBuilder(cfg *config.Config) *usecase.ChartBuilder {
	colors := models.RoomColors{
		EntireHome:  cfg.Dashboard.Colors.EntireHome,
		PrivateRoom: cfg.Dashboard.Colors.PrivateRoom,
		SharedRoom:  cfg.Dashboard.Colors.SharedRoom,
	}
	return usecase.NewChartBuilder(colors, cfg.Dashboard.HistogramBinDays, cfg.Dashboard.MapZoom)
}

// ProvidePublisher creates the update event publisher; a noop one when the
// event stream is disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Events.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic), nil
}

// ProvideSnapshotCache creates the snapshot cache: Redis when enabled,
// otherwise an in-process TTL cache.
func ProvideSnapshotCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDashboard creates the dashboard orchestrator.
func ProvideDashboard(
	table *usecase.ListingTable,
	agg *usecase.Aggregator,
	charts *usecase.ChartBuilder,
	pub repository.Publisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(table, agg, charts, pub, m, l)
}

// ProvideHub creates the WebSocket hub and attaches it to the dashboard so
// every filter transition is broadcast.
func ProvideHub(l *applogger.Logger, dash *usecase.Dashboard) *stream.Hub {
	hub := stream.NewHub(l, dash.Current)
	dash.SetBroadcaster(hub)
	return hub
}

// ProvideHandler creates the HTTP handler with snapshot caching.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	dash *usecase.Dashboard,
	hub *stream.Hub,
	cache icache.BytesCache,
) xhttp.Handler {
	h := api.NewDashboardEchoHandler(l, dash, hub)
	h.SetCache(cache, cfg.Cache.SnapshotTTL)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	dash *usecase.Dashboard,
	hub *stream.Hub,
	source repository.ListingSource,
	pub repository.Publisher,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, dash, hub, source, pub, handler)
}
