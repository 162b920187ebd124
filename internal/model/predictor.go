package model

import (
	"fmt"
	"sync"
	"time"

	"StockMind/internal/domain/models"
	"StockMind/pkg/logger"
)

// Config tunes tier selection and the fitted-model cache.
type Config struct {
	MinSamples  int
	LowerBound  int
	TestRatio   float64
	RidgeLambda float64
	CacheTTL    time.Duration
}

// Prediction is the raw next-close estimate before sentiment adjustment.
type Prediction struct {
	NextClose float64
	Metrics   *models.ModelMetrics
	Baseline  bool
}

type fitted struct {
	weights   []float64
	metrics   models.ModelMetrics
	expiresAt time.Time
}

// Predictor fits a next-close regressor over derived feature frames.
// Fits are memoized per data fingerprint so repeated requests against
// unchanged history skip the solve.
type Predictor struct {
	cfg    Config
	logger *logger.Logger

	mu    sync.Mutex
	cache map[string]fitted
	now   func() time.Time
}

func NewPredictor(cfg Config, log *logger.Logger) *Predictor {
	if cfg.TestRatio <= 0 || cfg.TestRatio >= 1 {
		cfg.TestRatio = 0.2
	}
	return &Predictor{
		cfg:    cfg,
		logger: log,
		cache:  make(map[string]fitted),
		now:    time.Now,
	}
}

// Predict estimates the next close for the frame's live row. Frames with
// fewer labeled rows than the lower bound fall back to the live short
// moving average and carry no metrics.
func (p *Predictor) Predict(frame models.FeatureFrame, fingerprint string) (Prediction, error) {
	if !frame.HasLive {
		return Prediction{}, fmt.Errorf("feature frame has no live row")
	}

	n := frame.Len()
	if n < p.cfg.LowerBound {
		return Prediction{NextClose: frame.Live.SMAShort, Baseline: true}, nil
	}

	if f, ok := p.lookup(fingerprint); ok {
		m := f.metrics
		return Prediction{NextClose: predict(f.weights, frame.Live.Vector()), Metrics: &m}, nil
	}

	vectors := make([][]float64, n)
	for i, row := range frame.Rows {
		vectors[i] = row.Vector()
	}

	trainN := n - int(float64(n)*p.cfg.TestRatio)
	if trainN >= n {
		trainN = n - 1
	}
	trainX, testX := vectors[:trainN], vectors[trainN:]
	trainY, testY := frame.Labels[:trainN], frame.Labels[trainN:]

	var (
		weights []float64
		err     error
	)
	if n >= p.cfg.MinSamples {
		weights, err = fitLeastSquares(trainX, trainY)
	} else {
		weights, err = fitRidge(trainX, trainY, p.cfg.RidgeLambda)
	}
	if err != nil {
		return Prediction{}, err
	}

	r2, mae := evaluate(weights, testX, testY)
	metrics := models.ModelMetrics{R2: r2, MAE: mae}
	p.store(fingerprint, fitted{
		weights:   weights,
		metrics:   metrics,
		expiresAt: p.now().Add(p.cfg.CacheTTL),
	})

	if p.logger != nil {
		p.logger.Debug("model fitted",
			logger.Int("rows", n),
			logger.Float64("r2", r2),
			logger.Float64("mae", mae),
		)
	}

	m := metrics
	return Prediction{NextClose: predict(weights, frame.Live.Vector()), Metrics: &m}, nil
}

func (p *Predictor) lookup(key string) (fitted, bool) {
	if key == "" || p.cfg.CacheTTL <= 0 {
		return fitted{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.cache[key]
	if !ok {
		return fitted{}, false
	}
	if p.now().After(f.expiresAt) {
		delete(p.cache, key)
		return fitted{}, false
	}
	return f, true
}

func (p *Predictor) store(key string, f fitted) {
	if key == "" || p.cfg.CacheTTL <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[key] = f
}
