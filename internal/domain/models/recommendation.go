package models

// Action is the advisory decision for a position.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Provenance records which data source produced the series for a request.
type Provenance string

const (
	ProvenanceLive  Provenance = "live"
	ProvenanceCache Provenance = "cache"
	ProvenanceNone  Provenance = "none"
)

// DegradedSource tells the caller which fidelity reduction applied.
type DegradedSource string

const (
	DegradedNone          DegradedSource = "none"
	DegradedCache         DegradedSource = "cache"
	DegradedSentimentOnly DegradedSource = "sentiment_only"
)

// ModelMetrics holds test-set quality figures of the fitted model.
type ModelMetrics struct {
	R2  float64 `json:"r2"`
	MAE float64 `json:"mae"`
}

// Recommendation is the immutable per-request result record. Price fields
// are nil when no series (live or cached) was obtainable.
type Recommendation struct {
	Symbol                 string         `json:"symbol"`
	CurrentPrice           *float64       `json:"current_price"`
	PredictedPrice         *float64       `json:"predicted_price"`
	AdjustedPredictedPrice *float64       `json:"adjusted_predicted_price"`
	Sentiment              float64        `json:"sentiment"`
	RSI                    *float64       `json:"rsi"`
	Action                 Action         `json:"action"`
	Rationale              string         `json:"rationale"`
	ModelMetrics           *ModelMetrics  `json:"model_metrics"`
	PotentialProfitLoss    *float64       `json:"potential_profit_loss"`
	Degraded               bool           `json:"degraded"`
	DegradedSource         DegradedSource `json:"degraded_source"`
}
