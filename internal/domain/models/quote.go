package models

import (
	"math"
	"sort"
	"time"
)

// Bar is one OHLCV bar for a single time period.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered-by-time sequence of bars.
type Series []Bar

// Sanitize returns a copy with non-finite bars dropped, sorted by time,
// duplicate timestamps collapsed (last wins). The result satisfies the
// series invariants: strictly increasing timestamps, finite fields.
func (s Series) Sanitize() Series {
	out := make(Series, 0, len(s))
	for _, b := range s {
		if !finite(b.Open) || !finite(b.High) || !finite(b.Low) || !finite(b.Close) || !finite(b.Volume) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	dedup := out[:0]
	for _, b := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Time.Equal(b.Time) {
			dedup[n-1] = b
			continue
		}
		dedup = append(dedup, b)
	}
	return dedup
}

// Closes returns the close-price column.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// Tail returns the last n bars (the whole series when shorter).
func (s Series) Tail(n int) Series {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
