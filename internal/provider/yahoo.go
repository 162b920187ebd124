package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"StockMind/internal/domain/models"
	xhttp "StockMind/pkg/http"
)

// Yahoo is the secondary quote provider, backed by the public chart API.
type Yahoo struct {
	baseURL string
	client  *xhttp.Client
}

func NewYahoo(baseURL string, timeout time.Duration) *Yahoo {
	return &Yahoo{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (y *Yahoo) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *Yahoo) Fetch(ctx context.Context, symbol string, lookback int) (models.Series, error) {
	var lastErr error
	for _, variant := range YahooVariants(symbol) {
		series, err := y.fetchVariant(ctx, variant, lookback)
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

func (y *Yahoo) fetchVariant(ctx context.Context, symbol string, lookback int) (models.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", y.baseURL, url.PathEscape(symbol))

	var chart yahooChart
	err := y.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {rangeForDays(lookback)},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrSymbolNotFound, symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrEmptySeries
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrEmptySeries
	}
	quote := result.Indicators.Quote[0]

	series := make(models.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// A null price column means an incomplete bar (holiday, or the
		// in-progress session). Price nulls drop the whole bar; a null
		// volume alone is kept as 0.
		o, okO := deref(quote.Open, i)
		h, okH := deref(quote.High, i)
		l, okL := deref(quote.Low, i)
		c, okC := deref(quote.Close, i)
		if !okO || !okH || !okL || !okC {
			continue
		}
		v, _ := deref(quote.Volume, i)
		series = append(series, models.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	return series.Sanitize().Tail(lookback), nil
}

func deref(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}
