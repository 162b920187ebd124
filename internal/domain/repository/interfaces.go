package repository

import (
	"context"
	"errors"
	"time"

	"StockMind/internal/domain/models"
)

// ErrCacheMiss is returned when no series has ever been stored for a symbol.
var ErrCacheMiss = errors.New("quotecache: symbol not found")

// QuoteProvider is the common fetch capability all upstream data sources
// implement. Providers are tried by the orchestrator in priority order.
type QuoteProvider interface {
	Name() string
	// Fetch returns up to lookback daily bars for symbol, oldest first.
	Fetch(ctx context.Context, symbol string, lookback int) (models.Series, error)
}

// QuoteCache is the durable per-symbol store of the last successful series.
// Get returns the last series written regardless of age; the write time is
// surfaced only as metadata. Put overwrites, last write wins.
type QuoteCache interface {
	Get(ctx context.Context, symbol string) (models.Series, time.Time, error)
	Put(ctx context.Context, symbol string, series models.Series) error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordProviderAttempt(provider string)
	RecordProviderFailure(provider, kind string)
	RecordFetchLatency(provider string, seconds float64)
	RecordDegraded(source string)
	RecordRecommendation(action string)
}

// SentimentEstimator scores recent news polarity for a symbol's issuer.
// Implementations never fail: any retrieval or parse error yields 0.
type SentimentEstimator interface {
	Score(ctx context.Context, symbol string) float64
}
