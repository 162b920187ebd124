package di

import (
	"context"
	"fmt"
	"time"

	"StockMind/internal/domain/repository"
	"StockMind/internal/handler/api"
	"StockMind/internal/model"
	"StockMind/internal/provider"
	"StockMind/internal/quotecache"
	"StockMind/internal/sentiment"
	"StockMind/internal/usecase"
	pkgch "StockMind/pkg/clickhouse"
	"StockMind/pkg/config"
	xhttp "StockMind/pkg/http"
	"StockMind/pkg/logger"
	"StockMind/pkg/metrics"
	"StockMind/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideProviders builds the quote provider chain in fallback order.
func ProvideProviders(cfg *config.Config) []repository.QuoteProvider {
	return []repository.QuoteProvider{
		provider.NewTwelveData(cfg.Providers.TwelveData.APIKey, cfg.Providers.TwelveData.BaseURL, cfg.Providers.AttemptTimeout),
		provider.NewYahoo(cfg.Providers.Yahoo.BaseURL, cfg.Providers.AttemptTimeout),
	}
}

// ProvideQuoteCache selects the durable cache backend from config. The
// cleanup function closes backend connections on shutdown.
func ProvideQuoteCache(cfg *config.Config) (repository.QuoteCache, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := quotecache.NewRedisStore(quotecache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case "clickhouse":
		ch := cfg.Cache.ClickHouse
		client, err := pkgch.NewClient(
			pkgch.WithHost(ch.Host),
			pkgch.WithPort(ch.Port),
			pkgch.WithDatabase(ch.Database),
			pkgch.WithCredentials(ch.User, ch.Password),
			pkgch.WithHTTP(ch.UseHTTP),
			pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := quotecache.NewClickHouseStore(ctx, client, ch.Database)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("clickhouse cache: %w", err)
		}
		return store, func() { _ = client.Close() }, nil

	default:
		store, err := quotecache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("file cache: %w", err)
		}
		return store, func() {}, nil
	}
}

// ProvideSentiment creates the headline sentiment estimator.
func ProvideSentiment(cfg *config.Config, log *logger.Logger) repository.SentimentEstimator {
	return sentiment.New(cfg.Sentiment.FeedURL, cfg.Sentiment.MaxHeadlines, cfg.Sentiment.Timeout, log)
}

// ProvidePredictor creates the tiered next-close predictor.
func ProvidePredictor(cfg *config.Config, log *logger.Logger) *model.Predictor {
	return model.NewPredictor(model.Config{
		MinSamples:  cfg.Model.MinSamples,
		LowerBound:  cfg.Model.LowerBound,
		TestRatio:   cfg.Model.TestRatio,
		RidgeLambda: cfg.Model.RidgeLambda,
		CacheTTL:    cfg.Model.CacheTTL,
	}, log)
}

// ProvideFetcher creates the quote acquisition orchestrator.
func ProvideFetcher(
	providers []repository.QuoteProvider,
	cache repository.QuoteCache,
	m repository.Metrics,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.Fetcher {
	return usecase.NewFetcher(providers, cache, m, usecase.FetcherConfig{
		LookbackDays:   cfg.Providers.LookbackDays,
		AttemptTimeout: cfg.Providers.AttemptTimeout,
		Backoff: provider.BackoffPolicy{
			MaxAttempts: cfg.Providers.Retry.MaxAttempts,
			BaseDelay:   cfg.Providers.Retry.BaseDelay,
			MaxDelay:    cfg.Providers.Retry.MaxDelay,
			Jitter:      0.2,
		},
	}, log)
}

// ProvideAdvisor creates the recommendation use case.
func ProvideAdvisor(
	fetcher *usecase.Fetcher,
	predictor *model.Predictor,
	est repository.SentimentEstimator,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Advisor {
	return usecase.NewAdvisor(fetcher, predictor, est, m, log)
}

// ProvideHTTPHandler creates the Echo routes handler.
func ProvideHTTPHandler(log *logger.Logger, advisor *usecase.Advisor, cfg *config.Config) xhttp.Handler {
	return api.NewPredictHandler(log, advisor, cfg.Server.RequestBudget)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
