package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TradeLens/internal/usecase"
	"TradeLens/pkg/cache"
	pkgch "TradeLens/pkg/clickhouse"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	pkgkafka "TradeLens/pkg/kafka"
	applogger "TradeLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	collector *usecase.FeedCollector
	consumer  *pkgkafka.Consumer
	handler   xhttp.Handler
	chClient  *pkgch.Client
	producer  *pkgkafka.Producer
	cache     cache.Service

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	collector *usecase.FeedCollector,
	consumer *pkgkafka.Consumer,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		collector: collector,
		consumer:  consumer,
		chClient:  chClient,
		producer:  producer,
		cache:     cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				a.logger.Error("feed collector error", applogger.Error(err))
			}
		}()
		a.logger.Info("feed collector started", applogger.Strings("channels", a.cfg.Feed.Channels))
	}

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.cfg.Kafka.EventsTopic))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			a.logger.Warn("feed collector stop error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		a.consumer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
