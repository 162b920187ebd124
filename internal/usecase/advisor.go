package usecase

import (
	"context"
	"fmt"
	"math"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
	"StockMind/internal/indicator"
	"StockMind/internal/model"
	"StockMind/internal/policy"
	"StockMind/internal/provider"
	"StockMind/pkg/logger"
)

// sentimentDivisor scales mean headline polarity into a price
// adjustment factor of 1 + sentiment/5.
const sentimentDivisor = 5.0

// Advisor runs the full pipeline for one request: quote acquisition,
// indicator derivation, prediction, sentiment blending, and the final
// policy decision.
type Advisor struct {
	fetcher   *Fetcher
	predictor *model.Predictor
	sentiment repository.SentimentEstimator
	metrics   repository.Metrics
	logger    *logger.Logger
}

func NewAdvisor(
	fetcher *Fetcher,
	predictor *model.Predictor,
	sentiment repository.SentimentEstimator,
	metrics repository.Metrics,
	log *logger.Logger,
) *Advisor {
	return &Advisor{
		fetcher:   fetcher,
		predictor: predictor,
		sentiment: sentiment,
		metrics:   metrics,
		logger:    log,
	}
}

// Advise produces a recommendation for req. It degrades rather than
// fails: stale cached quotes and missing quote data both yield a result,
// flagged accordingly.
func (a *Advisor) Advise(ctx context.Context, req models.PredictRequest) (models.Recommendation, error) {
	symbol := provider.Normalize(req.Symbol)

	sentimentCh := make(chan float64, 1)
	go func() {
		sentimentCh <- a.sentiment.Score(ctx, symbol)
	}()

	fetched, fetchErr := a.fetcher.Fetch(ctx, symbol)
	sentiment := <-sentimentCh

	if fetchErr != nil {
		a.metrics.RecordDegraded(string(models.DegradedSentimentOnly))
		d := policy.Degraded()
		a.metrics.RecordRecommendation(string(d.Action))
		a.logger.Warn("no quote data from any source", logger.String("symbol", symbol))
		return models.Recommendation{
			Symbol:         symbol,
			Sentiment:      round3(sentiment),
			Action:         d.Action,
			Rationale:      d.Rationale,
			Degraded:       true,
			DegradedSource: models.DegradedSentimentOnly,
		}, nil
	}

	series := fetched.Series
	if len(series) == 0 {
		return models.Recommendation{}, fmt.Errorf("series for %s has no closes", symbol)
	}
	current := series.LastClose()

	frame := indicator.Derive(series)
	predicted, modelMetrics, err := a.predictNext(frame, series, symbol)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("predict %s: %w", symbol, err)
	}

	adjusted := predicted * (1 + sentiment/sentimentDivisor)

	// Without a live indicator row the policy sees a neutral RSI, but the
	// response must not report one as if measured.
	rsi := 50.0
	var rsiOut *float64
	if frame.HasLive {
		rsi = frame.Live.RSI
		rsiOut = ptr(round3(rsi))
	}

	d := policy.Decide(current, adjusted, rsi)
	a.metrics.RecordRecommendation(string(d.Action))

	rec := models.Recommendation{
		Symbol:                 symbol,
		CurrentPrice:           ptr(round2(current)),
		PredictedPrice:         ptr(round2(predicted)),
		AdjustedPredictedPrice: ptr(round2(adjusted)),
		Sentiment:              round3(sentiment),
		RSI:                    rsiOut,
		Action:                 d.Action,
		Rationale:              d.Rationale,
		DegradedSource:         models.DegradedNone,
	}
	if modelMetrics != nil {
		rec.ModelMetrics = &models.ModelMetrics{
			R2:  round3(modelMetrics.R2),
			MAE: round3(modelMetrics.MAE),
		}
	}
	if req.BuyPrice > 0 {
		pl := (adjusted - req.BuyPrice) * float64(req.QuantityOrDefault())
		rec.PotentialProfitLoss = ptr(round2(pl))
	}
	if fetched.Provenance == models.ProvenanceCache {
		rec.Degraded = true
		rec.DegradedSource = models.DegradedCache
		a.metrics.RecordDegraded(string(models.DegradedCache))
	}
	return rec, nil
}

// predictNext runs the tiered model over the frame, falling back to a
// short moving average of raw closes when the frame could not produce a
// live feature row.
func (a *Advisor) predictNext(frame models.FeatureFrame, series models.Series, symbol string) (float64, *models.ModelMetrics, error) {
	if frame.HasLive {
		fp := fingerprint(symbol, series, frame.Len())
		pred, err := a.predictor.Predict(frame, fp)
		if err != nil {
			return 0, nil, err
		}
		return pred.NextClose, pred.Metrics, nil
	}

	closes := series.Closes()
	window := indicator.ShortWindow
	if len(closes) < window {
		window = len(closes)
	}
	if window == 0 {
		return 0, nil, fmt.Errorf("empty series")
	}
	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window), nil, nil
}

func fingerprint(symbol string, series models.Series, rows int) string {
	if len(series) == 0 {
		return ""
	}
	last := series[len(series)-1]
	return fmt.Sprintf("%s|%d|%d", symbol, last.Time.UnixNano(), rows)
}

func ptr(v float64) *float64 { return &v }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
