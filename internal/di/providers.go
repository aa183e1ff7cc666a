package di

import (
	"fmt"
	"time"

	"TradeCommittee/internal/domain/repository"
	domsvc "TradeCommittee/internal/domain/service"
	"TradeCommittee/internal/handler/api"
	mid "TradeCommittee/internal/middleware"
	internalrepo "TradeCommittee/internal/repository"
	svcmetrics "TradeCommittee/internal/service/metrics"
	"TradeCommittee/internal/service/quotes"
	"TradeCommittee/internal/service/ratelimit"
	"TradeCommittee/internal/services/committee"
	"TradeCommittee/internal/usecase"
	"TradeCommittee/pkg/cache"
	pkgch "TradeCommittee/pkg/clickhouse"
	"TradeCommittee/pkg/config"
	pkgkafka "TradeCommittee/pkg/kafka"
	applogger "TradeCommittee/pkg/logger"
	pkgmetrics "TradeCommittee/pkg/metrics"
	"TradeCommittee/pkg/queue"
	"TradeCommittee/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates the candidates consumer, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRedisCache creates the Redis-backed cache service.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	opts := []cache.RedisOption{
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	}
	if cfg.Redis.PoolSize > 0 {
		opts = append(opts, cache.WithRedisPool(cfg.Redis.PoolSize, 2, 5*time.Second))
	}
	c, err := cache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideCacheService layers an in-process cache over Redis. Snapshot
// lookups run once per candidate per scan, so the memory layer absorbs
// most of the read traffic.
func ProvideCacheService(rc *cache.RedisCache) cache.Service {
	return cache.NewLayeredCache(rc)
}

// ProvideMetrics creates a Prometheus metrics recorder behind the domain interface.
func ProvideMetrics() repository.Metrics {
	return svcmetrics.NewAdapter(pkgmetrics.New())
}

// ProvideDecisionStore creates ClickHouse decision storage.
func ProvideDecisionStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.DecisionStore {
	store := internalrepo.NewClickHouseDecisionStore(chClient, cfg.ClickHouse.Table)
	store.SetLogger(l)
	return store
}

// ProvideDecisionPublisher creates the Kafka decisions publisher.
func ProvideDecisionPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.DecisionPublisher {
	return internalrepo.NewKafkaDecisionPublisher(producer, cfg.Kafka.DecisionsTopic)
}

// ProvideSnapshotStore creates the cache-backed snapshot store.
func ProvideSnapshotStore(c cache.Service) repository.SnapshotStore {
	return internalrepo.NewCacheSnapshotStore(c)
}

// ProvideCatalystCalendar creates the in-memory catalyst calendar.
func ProvideCatalystCalendar() *internalrepo.CatalystCalendar {
	return internalrepo.NewCatalystCalendar()
}

// ProvideCommitteeParams maps config onto committee parameters.
func ProvideCommitteeParams(cfg *config.Config) committee.Params {
	p := committee.DefaultParams()
	if cfg.Committee.Capital > 0 {
		p.Capital = cfg.Committee.Capital
	}
	if cfg.Committee.Leverage > 0 {
		p.Leverage = cfg.Committee.Leverage
	}
	if cfg.Committee.MaxRiskPct > 0 {
		p.MaxRiskPct = cfg.Committee.MaxRiskPct
	}
	if cfg.Committee.MinRiskReward > 0 {
		p.MinRiskReward = cfg.Committee.MinRiskReward
	}
	if cfg.Committee.BuyScore > 0 {
		p.BuyScore = cfg.Committee.BuyScore
	}
	if cfg.Committee.WatchScore > 0 {
		p.WatchScore = cfg.Committee.WatchScore
	}
	return p
}

// ProvideCommittee creates the aggregator behind the domain interface.
func ProvideCommittee(p committee.Params) domsvc.Committee {
	return committee.NewAggregator(p)
}

// ProvideExclusionRules maps config onto pre-screen exclusion rules.
func ProvideExclusionRules(cfg *config.Config) usecase.ExclusionRules {
	return usecase.ExclusionRules{
		MinPrice:       cfg.Exclusions.MinPrice,
		MaxPrice:       cfg.Exclusions.MaxPrice,
		MinMarketCap:   cfg.Exclusions.MinMarketCap,
		MaxMarketCap:   cfg.Exclusions.MaxMarketCap,
		MinBeta:        cfg.Exclusions.MinBeta,
		SmallCapVolume: cfg.Exclusions.SmallCapVolume,
		MidCapVolume:   cfg.Exclusions.MidCapVolume,
		LargeCapVolume: cfg.Exclusions.LargeCapVolume,
	}
}

// ProvideDecisionProcessor routes decisions to the configured backend.
func ProvideDecisionProcessor(
	pub repository.DecisionPublisher,
	store repository.DecisionStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.DecisionProcessor {
	return usecase.NewDecisionProcessor(pub, store, metrics, cfg.Backend.Type)
}

// ProvideCommitteeEvaluator creates the single-instrument evaluation use case.
func ProvideCommitteeEvaluator(
	c domsvc.Committee,
	rules usecase.ExclusionRules,
	proc *usecase.DecisionProcessor,
	metrics repository.Metrics,
	l *applogger.Logger,
) *usecase.CommitteeEvaluator {
	return usecase.NewCommitteeEvaluator(c, rules, proc, metrics, l)
}

// ProvideScanner creates the batch scan use case.
func ProvideScanner(
	c domsvc.Committee,
	snapshots repository.SnapshotStore,
	calendar *internalrepo.CatalystCalendar,
	rules usecase.ExclusionRules,
	proc *usecase.DecisionProcessor,
	metrics repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Scanner {
	return usecase.NewScanner(c, snapshots, calendar, rules, proc, metrics, l, cfg.Scan.Workers)
}

// ProvideQuoteCollector creates the quote intake, or nil when disabled.
func ProvideQuoteCollector(
	snapshots repository.SnapshotStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.QuoteCollector {
	if !cfg.Quotes.Enabled {
		return nil
	}
	stream := quotes.New(
		cfg.Quotes.APIKey,
		cfg.Quotes.WebSocketURL,
		cfg.Quotes.Symbols,
		cfg.Quotes.ReconnectDelay,
		cfg.Quotes.PingInterval,
	)
	updater := usecase.NewSnapshotUpdater(snapshots, metrics)
	pipe := mid.NewQuotePipeline(updater, metrics,
		mid.WithMaxRPS(cfg.Quotes.MaxRPS),
		mid.WithBufferSize(cfg.Quotes.BufferSize),
	)
	return usecase.NewQuoteCollector(stream, updater, metrics, pipe)
}

// ProvideCandidatesHandler registers the handler for the candidates topic.
func ProvideCandidatesHandler(
	evaluator *usecase.CommitteeEvaluator,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaCandidatesHandler {
	return usecase.NewKafkaCandidatesHandler(cfg.Kafka.CandidatesTopic, evaluator, metrics)
}

// ProvideScanQueue creates the Redis-backed scan queue with the scan job registered.
func ProvideScanQueue(
	l *applogger.Logger,
	rc *cache.RedisCache,
	scanner *usecase.Scanner,
	cfg *config.Config,
) *queue.RedisQueue {
	q := queue.NewRedisQueue(l,
		&queue.QueueConfig{
			Workers:    cfg.Scan.QueueWorkers,
			QueueSize:  cfg.Scan.QueueSize,
			RetryLimit: cfg.Scan.RetryLimit,
			RetryDelay: cfg.Scan.RetryDelay,
		},
		rc.Client(),
		queue.ModeProducerConsumer,
	)
	q.RegisterJob(usecase.NewScanJob(scanner, rc, l))
	return q
}

// ProvideHTTPHandler creates the committee API handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	evaluator *usecase.CommitteeEvaluator,
	scanner *usecase.Scanner,
	store repository.DecisionStore,
	calendar *internalrepo.CatalystCalendar,
	snapshots repository.SnapshotStore,
	q *queue.RedisQueue,
	c cache.Service,
	cfg *config.Config,
) *api.CommitteeEchoHandler {
	return api.NewCommitteeEchoHandler(
		l, evaluator, scanner, store, calendar, snapshots, q, c,
		ratelimit.New(), cfg.Scan.RateLimitRPS,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaCandidatesHandler,
	chClient *pkgch.Client,
	store repository.DecisionStore,
	proc *usecase.DecisionProcessor,
	q *queue.RedisQueue,
	rc *cache.RedisCache,
	handler *api.CommitteeEchoHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if q != nil {
		// Aggregate repeated error logs onto the queue for offline review
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          "committee.logs",
			Publisher:      q,
		})
	}
	return server.New(cfg, l, collector, consumer, kh, chClient, store, proc, q, rc, handler)
}
