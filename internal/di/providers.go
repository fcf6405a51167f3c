package di

import (
	"fmt"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	"RankPull/internal/handler/api"
	internalrepo "RankPull/internal/repository"
	"RankPull/internal/service/binance"
	"RankPull/internal/service/telegram"
	"RankPull/internal/usecase"
	"RankPull/pkg/cache"
	"RankPull/pkg/config"
	xhttp "RankPull/pkg/http"
	pkgkafka "RankPull/pkg/kafka"
	xlogger "RankPull/pkg/logger"
	"RankPull/pkg/metrics"
	"RankPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:   cfg.Logger.Level,
		Format:  cfg.Logger.Format,
		Output:  cfg.Logger.Output,
		Service: cfg.Service.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideLeaderboardSource creates the Binance leaderboard client.
func ProvideLeaderboardSource(cfg *config.Config) drepo.LeaderboardSource {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Leaderboard.Timeout))
	return binance.New(
		httpClient,
		cfg.Leaderboard.BaseURL,
		cfg.Leaderboard.TradeType,
		cfg.Leaderboard.StatisticsType,
		cfg.Leaderboard.PeriodType,
	)
}

// ProvideNotifier creates the Telegram notifier, or nil when disabled.
func ProvideNotifier(cfg *config.Config, l *xlogger.Logger) (drepo.Notifier, error) {
	if !cfg.Telegram.Enabled {
		return nil, nil
	}
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Telegram.Timeout))
	n, err := telegram.New(
		httpClient,
		l,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Leaderboard.PeriodType,
		cfg.Leaderboard.StatisticsType,
		cfg.Telegram.RetryDelay,
	)
	if err != nil {
		return nil, fmt.Errorf("telegram notifier: %w", err)
	}
	return n, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultPublisher creates the Kafka result publisher, or nil when the
// producer is absent.
func ProvideResultPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the latest-report store for the configured backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "redis":
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, nil
	}
}

// ProvideReportBuilder creates the fetch-and-aggregate pipeline.
func ProvideReportBuilder(src drepo.LeaderboardSource, m drepo.Metrics, l *xlogger.Logger, cfg *config.Config) *usecase.ReportBuilder {
	return usecase.NewReportBuilder(src, m, l, cfg.Leaderboard.TopN, models.SideRuleFor(cfg.Leaderboard.SideConvention))
}

// ProvideReportRunner creates the invocation entry point.
func ProvideReportRunner(
	builder *usecase.ReportBuilder,
	notifier drepo.Notifier,
	publisher drepo.Publisher,
	store cache.Service,
	m drepo.Metrics,
	l *xlogger.Logger,
	cfg *config.Config,
) *usecase.ReportRunner {
	return usecase.NewReportRunner(builder, notifier, publisher, store, cfg.Cache.TTL, m, l)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(l *xlogger.Logger, runner *usecase.ReportRunner) xhttp.Handler {
	return api.NewReportEchoHandler(l, runner)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *xlogger.Logger,
	runner *usecase.ReportRunner,
	handler xhttp.Handler,
	publisher drepo.Publisher,
	store cache.Service,
) *server.App {
	return server.New(cfg, l, runner, handler, publisher, store)
}
