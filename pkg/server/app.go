package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "TradeCommittee/internal/domain/repository"
	"TradeCommittee/internal/usecase"
	"TradeCommittee/pkg/cache"
	pkgch "TradeCommittee/pkg/clickhouse"
	"TradeCommittee/pkg/config"
	xhttp "TradeCommittee/pkg/http"
	pkgkafka "TradeCommittee/pkg/kafka"
	applogger "TradeCommittee/pkg/logger"
	"TradeCommittee/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	collector  *usecase.QuoteCollector
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	chClient   *pkgch.Client
	store      domrepo.DecisionStore
	proc       *usecase.DecisionProcessor
	queue      *queue.RedisQueue
	redisCache *cache.RedisCache
	httpServer *xhttp.Server
	handler    xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	store domrepo.DecisionStore,
	proc *usecase.DecisionProcessor,
	q *queue.RedisQueue,
	rc *cache.RedisCache,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:        cfg,
		logger:     l,
		collector:  collector,
		consumer:   consumer,
		kh:         kh,
		chClient:   chClient,
		store:      store,
		proc:       proc,
		queue:      q,
		redisCache: rc,
		handler:    handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	// Ensure decision table exists before serving traffic
	initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := a.store.Init(initCtx); err != nil {
		initCancel()
		l.Error("decision store init error", applogger.Error(err))
		return err
	}
	initCancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start quote collector when configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("quote collector error", applogger.Error(err))
			}
		}()
		l.Info("quote collector started", applogger.Strings("symbols", a.cfg.Quotes.Symbols))
	}

	// Start candidates consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start scan queue workers
	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			l.Error("scan queue start error", applogger.Error(err))
			return err
		}
		l.Info("scan queue started")
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger
	l.Info("shutting down...")

	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("quote collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			l.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	// Flushes the decision publisher; the store rides on chClient below
	if a.proc != nil {
		a.proc.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.redisCache != nil {
		if err := a.redisCache.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
