package models

// FeatureRow holds the indicator values for one fully-determined bar.
type FeatureRow struct {
	Return     float64
	SMAShort   float64
	SMALong    float64
	RSI        float64
	MACD       float64
	Volatility float64
}

// Vector returns the row as a regression input vector.
func (r FeatureRow) Vector() []float64 {
	return []float64{r.Return, r.SMAShort, r.SMALong, r.RSI, r.MACD, r.Volatility}
}

// FeatureFrame is the labeled training view of a series plus the live row.
// Rows and Labels are index-aligned; Labels[i] is the close of the bar
// following Rows[i]. Live is the newest fully-determined row, which has no
// label yet and is the prediction input.
type FeatureFrame struct {
	Rows    []FeatureRow
	Labels  []float64
	Live    FeatureRow
	HasLive bool
}

// Len returns the number of labeled rows.
func (f FeatureFrame) Len() int {
	return len(f.Rows)
}

// Empty reports whether the frame has no usable rows at all.
func (f FeatureFrame) Empty() bool {
	return len(f.Rows) == 0 && !f.HasLive
}
