package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockMind/internal/domain/models"
	xhttp "StockMind/pkg/http"
)

// TwelveData is the primary structured-data quote provider. It requires an
// API key; without one Fetch fails terminally so the orchestrator falls
// through immediately.
type TwelveData struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

func NewTwelveData(apiKey, baseURL string, timeout time.Duration) *TwelveData {
	return &TwelveData{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (t *TwelveData) Name() string { return "twelvedata" }

type twelveDataResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
}

// Fetch tries each symbol-spelling variant in fixed order and returns the
// first non-empty series. A retryable transport failure on any variant
// makes the whole call retryable.
func (t *TwelveData) Fetch(ctx context.Context, symbol string, lookback int) (models.Series, error) {
	if t.apiKey == "" {
		return nil, ErrNotConfigured
	}

	var lastErr error
	for _, variant := range TwelveDataVariants(symbol) {
		series, err := t.fetchVariant(ctx, variant, lookback)
		if err != nil {
			if Retryable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if len(series) > 0 {
			return series, nil
		}
		lastErr = ErrEmptySeries
	}
	if lastErr == nil {
		lastErr = ErrEmptySeries
	}
	return nil, lastErr
}

func (t *TwelveData) fetchVariant(ctx context.Context, symbol string, lookback int) (models.Series, error) {
	var resp twelveDataResponse
	err := t.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    t.baseURL + "/time_series",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"interval":   {"1day"},
			"outputsize": {strconv.Itoa(lookback)},
			"format":     {"JSON"},
			"apikey":     {t.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("twelvedata %s: %w", symbol, err)
	}

	if resp.Status == "error" {
		// The API reports unknown symbols and rate limits as JSON errors
		// with a 200 transport status.
		if resp.Code == 429 {
			return nil, &xhttp.StatusError{StatusCode: 429, Body: resp.Message}
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrSymbolNotFound, symbol, resp.Message)
	}
	if len(resp.Values) == 0 {
		return nil, ErrEmptySeries
	}

	// Values arrive newest first.
	series := make(models.Series, 0, len(resp.Values))
	for i := len(resp.Values) - 1; i >= 0; i-- {
		v := resp.Values[i]
		ts, err := time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			if ts, err = time.Parse("2006-01-02 15:04:05", v.Datetime); err != nil {
				continue
			}
		}
		bar := models.Bar{Time: ts}
		if bar.Open, err = strconv.ParseFloat(v.Open, 64); err != nil {
			continue
		}
		if bar.High, err = strconv.ParseFloat(v.High, 64); err != nil {
			continue
		}
		if bar.Low, err = strconv.ParseFloat(v.Low, 64); err != nil {
			continue
		}
		if bar.Close, err = strconv.ParseFloat(v.Close, 64); err != nil {
			continue
		}
		if v.Volume != "" {
			bar.Volume, _ = strconv.ParseFloat(v.Volume, 64)
		}
		series = append(series, bar)
	}

	return series.Sanitize().Tail(lookback), nil
}
