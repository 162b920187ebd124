package model

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"StockMind/internal/domain/models"
)

func testConfig() Config {
	return Config{
		MinSamples:  50,
		LowerBound:  20,
		TestRatio:   0.2,
		RidgeLambda: 1.0,
		CacheTTL:    10 * time.Minute,
	}
}

// linearFrame builds a frame whose labels are an exact linear function of
// the features, so a least-squares fit recovers it.
func linearFrame(n int, rng *rand.Rand) models.FeatureFrame {
	var frame models.FeatureFrame
	gen := func() models.FeatureRow {
		return models.FeatureRow{
			Return:     rng.NormFloat64() * 0.02,
			SMAShort:   100 + rng.NormFloat64()*5,
			SMALong:    100 + rng.NormFloat64()*3,
			RSI:        30 + rng.Float64()*40,
			MACD:       rng.NormFloat64(),
			Volatility: 0.01 + rng.Float64()*0.02,
		}
	}
	label := func(r models.FeatureRow) float64 {
		return 5 + 50*r.Return + 0.6*r.SMAShort + 0.4*r.SMALong + 0.01*r.RSI + 2*r.MACD - 10*r.Volatility
	}
	for i := 0; i < n; i++ {
		row := gen()
		frame.Rows = append(frame.Rows, row)
		frame.Labels = append(frame.Labels, label(row))
	}
	frame.Live = gen()
	frame.HasLive = true
	return frame
}

func TestPredictBaselineTier(t *testing.T) {
	p := NewPredictor(testConfig(), nil)
	frame := linearFrame(10, rand.New(rand.NewSource(1)))

	pred, err := p.Predict(frame, "sym|1|10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pred.Baseline {
		t.Fatal("expected baseline prediction below lower bound")
	}
	if pred.Metrics != nil {
		t.Fatal("baseline prediction must carry no metrics")
	}
	if pred.NextClose != frame.Live.SMAShort {
		t.Fatalf("expected live short SMA %v, got %v", frame.Live.SMAShort, pred.NextClose)
	}
}

func TestPredictLeastSquaresTier(t *testing.T) {
	p := NewPredictor(testConfig(), nil)
	rng := rand.New(rand.NewSource(2))
	frame := linearFrame(80, rng)

	pred, err := p.Predict(frame, "sym|1|80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Baseline {
		t.Fatal("expected fitted prediction")
	}
	if pred.Metrics == nil {
		t.Fatal("expected metrics from fitted model")
	}

	want := 5 + 50*frame.Live.Return + 0.6*frame.Live.SMAShort + 0.4*frame.Live.SMALong +
		0.01*frame.Live.RSI + 2*frame.Live.MACD - 10*frame.Live.Volatility
	if math.Abs(pred.NextClose-want) > 1e-6 {
		t.Fatalf("expected %v, got %v", want, pred.NextClose)
	}
	if pred.Metrics.R2 < 0.999 {
		t.Fatalf("expected near-perfect R2 on noiseless data, got %v", pred.Metrics.R2)
	}
	if pred.Metrics.MAE > 1e-6 {
		t.Fatalf("expected near-zero MAE, got %v", pred.Metrics.MAE)
	}
}

func TestPredictRidgeTier(t *testing.T) {
	p := NewPredictor(testConfig(), nil)
	frame := linearFrame(30, rand.New(rand.NewSource(3)))

	pred, err := p.Predict(frame, "sym|1|30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Baseline {
		t.Fatal("expected fitted prediction")
	}
	if pred.Metrics == nil {
		t.Fatal("expected metrics from ridge model")
	}
	if math.IsNaN(pred.NextClose) || math.IsInf(pred.NextClose, 0) {
		t.Fatalf("non-finite prediction: %v", pred.NextClose)
	}
}

func TestPredictReusesFitForFingerprint(t *testing.T) {
	p := NewPredictor(testConfig(), nil)
	frame := linearFrame(80, rand.New(rand.NewSource(4)))

	first, err := p.Predict(frame, "sym|42|80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same fingerprint with different labels must hit the cached fit.
	altered := frame
	altered.Labels = make([]float64, len(frame.Labels))
	second, err := p.Predict(altered, "sym|42|80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.NextClose != second.NextClose {
		t.Fatalf("expected cached fit to be reused: %v vs %v", first.NextClose, second.NextClose)
	}
}

func TestPredictNoLiveRow(t *testing.T) {
	p := NewPredictor(testConfig(), nil)
	frame := linearFrame(80, rand.New(rand.NewSource(5)))
	frame.HasLive = false

	if _, err := p.Predict(frame, ""); err == nil {
		t.Fatal("expected error without a live row")
	}
}
