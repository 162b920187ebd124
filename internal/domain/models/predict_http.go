package models

// Requests for advisory HTTP endpoints. Defined in domain for consistency and reuse.

type PredictRequest struct {
	Symbol   string  `json:"symbol" validate:"required"`
	BuyPrice float64 `json:"buy_price" validate:"gte=0"`
	// Pointer so an explicit 0 fails validation instead of being
	// rewritten by the default.
	Quantity *int `json:"quantity" default:"1" validate:"required,gte=1"`
}

// QuantityOrDefault returns the requested quantity, defaulting to 1.
func (r PredictRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}
