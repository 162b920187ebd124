package usecase

import (
	"context"
	"errors"
	"time"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
	"StockMind/internal/provider"
	"StockMind/pkg/logger"
)

// FetchResult carries the obtained series and where it came from.
type FetchResult struct {
	Series     models.Series
	Provenance models.Provenance
	// WrittenAt is set when the series was served from the cache.
	WrittenAt time.Time
}

// FetcherConfig tunes the provider fan-out.
type FetcherConfig struct {
	LookbackDays   int
	AttemptTimeout time.Duration
	Backoff        provider.BackoffPolicy
}

// Fetcher walks quote providers in priority order, retrying transient
// failures, and falls back to the durable cache when every provider is
// exhausted. Live results are written through to the cache.
type Fetcher struct {
	providers []repository.QuoteProvider
	cache     repository.QuoteCache
	metrics   repository.Metrics
	cfg       FetcherConfig
	logger    *logger.Logger
}

func NewFetcher(
	providers []repository.QuoteProvider,
	cache repository.QuoteCache,
	metrics repository.Metrics,
	cfg FetcherConfig,
	log *logger.Logger,
) *Fetcher {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 15 * time.Second
	}
	if cfg.Backoff.MaxAttempts <= 0 {
		cfg.Backoff = provider.DefaultBackoff()
	}
	return &Fetcher{
		providers: providers,
		cache:     cache,
		metrics:   metrics,
		cfg:       cfg,
		logger:    log,
	}
}

// Fetch returns the freshest series obtainable for symbol. The error is
// non-nil only when both every provider and the cache came up empty; the
// result then carries ProvenanceNone.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) (FetchResult, error) {
	symbol = provider.Normalize(symbol)

	for _, p := range f.providers {
		series, err := f.fetchWithRetry(ctx, p, symbol)
		if err == nil {
			f.writeThrough(ctx, symbol, series)
			return FetchResult{Series: series, Provenance: models.ProvenanceLive}, nil
		}
		if errors.Is(err, provider.ErrNotConfigured) {
			continue
		}
		f.logger.Warn("provider exhausted",
			logger.String("provider", p.Name()),
			logger.String("symbol", symbol),
			logger.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	series, writtenAt, err := f.cache.Get(ctx, symbol)
	if err == nil && len(series) > 0 {
		f.logger.Info("serving cached quotes",
			logger.String("symbol", symbol),
			logger.Duration("age", time.Since(writtenAt)),
		)
		return FetchResult{Series: series, Provenance: models.ProvenanceCache, WrittenAt: writtenAt}, nil
	}
	if err != nil && !errors.Is(err, repository.ErrCacheMiss) {
		f.logger.Error("cache read failed", logger.String("symbol", symbol), logger.Error(err))
	}

	return FetchResult{Provenance: models.ProvenanceNone}, provider.ErrEmptySeries
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, p repository.QuoteProvider, symbol string) (models.Series, error) {
	var lastErr error

	for attempt := 0; attempt < f.cfg.Backoff.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := f.cfg.Backoff.Wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		f.metrics.RecordProviderAttempt(p.Name())
		start := time.Now()

		attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.AttemptTimeout)
		series, err := p.Fetch(attemptCtx, symbol, f.cfg.LookbackDays)
		cancel()

		f.metrics.RecordFetchLatency(p.Name(), time.Since(start).Seconds())

		if err == nil {
			if len(series) == 0 {
				return nil, provider.ErrEmptySeries
			}
			return series, nil
		}

		f.metrics.RecordProviderFailure(p.Name(), provider.FailureKind(err))
		lastErr = err

		if errors.Is(err, provider.ErrNotConfigured) {
			return nil, err
		}
		if !provider.Retryable(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Debug("retrying provider",
			logger.String("provider", p.Name()),
			logger.String("symbol", symbol),
			logger.Int("attempt", attempt+1),
			logger.Error(err),
		)
	}

	return nil, lastErr
}

func (f *Fetcher) writeThrough(ctx context.Context, symbol string, series models.Series) {
	if err := f.cache.Put(ctx, symbol, series); err != nil {
		f.logger.Error("cache write failed", logger.String("symbol", symbol), logger.Error(err))
	}
}
