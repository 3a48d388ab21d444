package di

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/repository"
	"TradeLens/internal/handler/api"
	internalrepo "TradeLens/internal/repository"
	"TradeLens/internal/service/feed"
	"TradeLens/internal/usecase"
	"TradeLens/pkg/cache"
	pkgch "TradeLens/pkg/clickhouse"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	pkgkafka "TradeLens/pkg/kafka"
	applogger "TradeLens/pkg/logger"
	"TradeLens/pkg/metrics"
	"TradeLens/pkg/server"
)

// ProvideLogger creates the application logger and, when an audit topic is
// configured alongside Kafka, attaches the warn/error audit collector.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if producer != nil && cfg.Kafka.AuditTopic != "" {
		l.SetCollector(applogger.NewAuditCollector(&applogger.AuditConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.AuditTopic,
			Publisher:      producer,
		}))
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// journal schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.Table
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
		"CREATE TABLE IF NOT EXISTS " + table + ` (
			id String,
			key String,
			kind String,
			symbol String,
			timeframe String,
			tags Array(String),
			created_at_ms Int64,
			updated_at_ms Int64,
			payload String
		) ENGINE=ReplacingMergeTree(updated_at_ms) ORDER BY (id)`,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(1),
		pkgkafka.WithMaxAttempts(3),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer with the journal handler
// registered, or nil when no brokers are configured.
func ProvideKafkaConsumer(cfg *config.Config, jh *usecase.JournalEventsHandler) (*pkgkafka.Consumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.RegisterHandler(jh)
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEventStore creates the ClickHouse-backed event store.
func ProvideEventStore(chClient *pkgch.Client, cfg *config.Config) repository.EventStore {
	return internalrepo.NewClickHouseEventStore(chClient.DB(), cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)
}

// ProvideCache creates the bundle cache: Redis when configured, in-process
// memory otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	if cfg.Analytics.Redis.Enabled {
		rc, err := cache.NewRedisCache(cfg.Analytics.Redis.Addr, cfg.Analytics.Redis.Password, cfg.Analytics.Redis.DB)
		if err == nil {
			return rc
		}
		l.Warn("redis unavailable, falling back to memory cache", applogger.Error(err))
	}
	return cache.NewMemoryCache()
}

// ProvideFeedStream creates the journal WebSocket stream, or nil when the
// feed is disabled.
func ProvideFeedStream(cfg *config.Config, l *applogger.Logger) repository.EventStream {
	if !cfg.Feed.Enabled {
		return nil
	}
	return feed.New(
		cfg.Feed.WebSocketURL,
		cfg.Feed.Token,
		cfg.Feed.Channels,
		cfg.Feed.ReconnectDelay,
		cfg.Feed.PingInterval,
		l,
	)
}

// ProvideEventIngestor creates the ingestion use case.
func ProvideEventIngestor(store repository.EventStore, m repository.Metrics) *usecase.EventIngestor {
	return usecase.NewEventIngestor(store, m)
}

// ProvideJournalEventsHandler registers the handler for the journal topic.
func ProvideJournalEventsHandler(ingestor *usecase.EventIngestor, m repository.Metrics, cfg *config.Config) *usecase.JournalEventsHandler {
	return usecase.NewJournalEventsHandler(cfg.Kafka.EventsTopic, ingestor, m)
}

// ProvideFeedCollector creates the feed collector, or nil when the feed is
// disabled.
func ProvideFeedCollector(stream repository.EventStream, ingestor *usecase.EventIngestor, m repository.Metrics) *usecase.FeedCollector {
	if stream == nil {
		return nil
	}
	return usecase.NewFeedCollector(stream, ingestor, m)
}

// ProvideDashboardUseCase creates the analytics use case.
func ProvideDashboardUseCase(store repository.EventStore, c cache.Service, m repository.Metrics, cfg *config.Config) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(store, c, m, cfg.Analytics.FetchLimit, cfg.Analytics.CacheTTL)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(l *applogger.Logger, dash *usecase.DashboardUseCase) xhttp.Handler {
	return api.NewMetricsEchoHandler(l, dash)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	collector *usecase.FeedCollector,
	consumer *pkgkafka.Consumer,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, l, handler, collector, consumer, chClient, producer, cacheSvc)
}
