package indicator

import (
	"math"

	"StockMind/internal/domain/models"
)

// Window sizes for the derived indicators. MinWindow is the longest
// look-back any indicator needs; bars before it have undefined rows and
// are dropped from the frame.
const (
	ShortWindow = 5
	LongWindow  = 20
	RSIPeriod   = 14
	VolWindow   = 20
	MACDFast    = 12
	MACDSlow    = 26

	MinWindow = VolWindow
)

// Derive computes the feature frame for a series: percentage return,
// short/long simple moving averages, RSI, MACD and rolling return
// volatility over the close column. Only fully-determined rows are kept:
// for N input bars the labeled frame holds N-MinWindow-1 rows, and the
// newest row (which has no next-bar label yet) is carried as the live
// prediction input. An empty frame means insufficient data, not an error.
func Derive(series models.Series) models.FeatureFrame {
	var frame models.FeatureFrame
	closes := series.Closes()
	n := len(closes)
	if n <= MinWindow {
		return frame
	}

	rets := returns(closes)
	emaFast := ema(closes, MACDFast)
	emaSlow := ema(closes, MACDSlow)

	for i := MinWindow; i < n; i++ {
		row := models.FeatureRow{
			Return:     rets[i],
			SMAShort:   sma(closes, i, ShortWindow),
			SMALong:    sma(closes, i, LongWindow),
			RSI:        rsi(closes, i, RSIPeriod),
			MACD:       emaFast[i] - emaSlow[i],
			Volatility: stddev(rets[i-VolWindow+1 : i+1]),
		}
		if !rowFinite(row) {
			continue
		}
		if i == n-1 {
			frame.Live = row
			frame.HasLive = true
		} else {
			frame.Rows = append(frame.Rows, row)
			frame.Labels = append(frame.Labels, closes[i+1])
		}
	}
	return frame
}

// returns gives the percentage change column; index 0 is undefined (NaN).
func returns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	out[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return out
}

// sma averages the window ending at index i inclusive.
func sma(closes []float64, i, window int) float64 {
	if i+1 < window {
		return math.NaN()
	}
	sum := 0.0
	for j := i - window + 1; j <= i; j++ {
		sum += closes[j]
	}
	return sum / float64(window)
}

// rsi computes the Relative Strength Index over the trailing period using
// the average gain/loss ratio. Zero average loss is treated as maximal
// momentum: RSI = 100.
func rsi(closes []float64, i, period int) float64 {
	if i < period {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for j := i - period + 1; j <= i; j++ {
		d := closes[j] - closes[j-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := gain / loss
	return 100.0 - 100.0/(1.0+rs)
}

// ema computes an exponential moving average column seeded at the first
// close, with alpha = 2/(span+1).
func ema(closes []float64, span int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1-alpha)*out[i-1]
	}
	return out
}

// stddev is the population standard deviation of vals. NaN inputs poison
// the result, which drops the row.
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	sum := 0.0
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}

func rowFinite(r models.FeatureRow) bool {
	for _, v := range r.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
