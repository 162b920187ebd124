package indicator

import (
	"math"
	"testing"
	"time"

	"StockMind/internal/domain/models"
)

func seriesFromCloses(closes []float64) models.Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, len(closes))
	for i, c := range closes {
		s[i] = models.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return s
}

func wavyCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3) + 0.1*float64(i)
	}
	return closes
}

func TestDeriveFrameLength(t *testing.T) {
	for _, n := range []int{35, 50, 120} {
		frame := Derive(seriesFromCloses(wavyCloses(n)))
		want := n - MinWindow - 1
		if got := frame.Len(); got != want {
			t.Fatalf("n=%d: expected %d labeled rows, got %d", n, want, got)
		}
		if !frame.HasLive {
			t.Fatalf("n=%d: expected live row", n)
		}
		if len(frame.Labels) != frame.Len() {
			t.Fatalf("n=%d: labels/rows mismatch: %d vs %d", n, len(frame.Labels), frame.Len())
		}
	}
}

func TestDeriveInsufficientData(t *testing.T) {
	frame := Derive(seriesFromCloses(wavyCloses(MinWindow)))
	if !frame.Empty() {
		t.Fatalf("expected empty frame for %d bars", MinWindow)
	}
}

func TestDeriveLabelsAreNextClose(t *testing.T) {
	closes := wavyCloses(40)
	frame := Derive(seriesFromCloses(closes))
	for i, label := range frame.Labels {
		want := closes[MinWindow+i+1]
		if label != want {
			t.Fatalf("label %d: expected %v, got %v", i, want, label)
		}
	}
}

func TestRSIBounds(t *testing.T) {
	frame := Derive(seriesFromCloses(wavyCloses(80)))
	check := func(rsi float64) {
		if rsi < 0 || rsi > 100 {
			t.Fatalf("rsi out of bounds: %v", rsi)
		}
	}
	for _, row := range frame.Rows {
		check(row.RSI)
	}
	check(frame.Live.RSI)
}

func TestRSIAllGains(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	frame := Derive(seriesFromCloses(closes))
	if !frame.HasLive {
		t.Fatal("expected live row")
	}
	if frame.Live.RSI != 100 {
		t.Fatalf("expected RSI 100 on monotone gains, got %v", frame.Live.RSI)
	}
}

func TestDeriveConstantPricesZeroVolatility(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 50
	}
	frame := Derive(seriesFromCloses(closes))
	if !frame.HasLive {
		t.Fatal("expected live row")
	}
	if frame.Live.Volatility != 0 {
		t.Fatalf("expected zero volatility, got %v", frame.Live.Volatility)
	}
	if frame.Live.MACD != 0 {
		t.Fatalf("expected zero MACD, got %v", frame.Live.MACD)
	}
}
