package policy

import "StockMind/internal/domain/models"

// RiseThreshold is the minimum adjusted-prediction premium over the
// current price that counts as an expected rise.
const RiseThreshold = 1.01

const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Decision pairs an action with its human-readable rationale.
type Decision struct {
	Action    models.Action
	Rationale string
}

// Decide maps the current price, sentiment-adjusted prediction, and RSI
// onto a trading action. Rules are evaluated in order and the first
// match wins.
func Decide(current, adjusted, rsi float64) Decision {
	switch {
	case rsi < RSIOversold:
		return Decision{Action: models.ActionBuy, Rationale: "Oversold condition."}
	case rsi > RSIOverbought:
		return Decision{Action: models.ActionSell, Rationale: "Overbought condition."}
	case adjusted > current*RiseThreshold:
		return Decision{Action: models.ActionHold, Rationale: "Predicted rise expected soon."}
	default:
		return Decision{Action: models.ActionSell, Rationale: "Weak momentum detected."}
	}
}

// Degraded is the decision returned when no price history could be
// obtained from any source.
func Degraded() Decision {
	return Decision{Action: models.ActionHold, Rationale: "Price data unavailable; decision withheld."}
}
