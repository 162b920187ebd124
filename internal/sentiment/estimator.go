package sentiment

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonreiter/govader"

	"StockMind/internal/domain/repository"
	"StockMind/internal/provider"
	xhttp "StockMind/pkg/http"
	xlogger "StockMind/pkg/logger"
)

// Estimator scores recent news polarity for a symbol's issuer from a news
// RSS search feed. It never fails the caller: every retrieval or parse
// error collapses to the neutral score 0.
type Estimator struct {
	feedURL      string
	maxHeadlines int
	client       *xhttp.Client
	analyzer     *govader.SentimentIntensityAnalyzer
	logger       *xlogger.Logger
}

func New(feedURL string, maxHeadlines int, timeout time.Duration, logger *xlogger.Logger) *Estimator {
	return &Estimator{
		feedURL:      feedURL,
		maxHeadlines: maxHeadlines,
		client:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		analyzer:     govader.NewSentimentIntensityAnalyzer(),
		logger:       logger,
	}
}

// Score returns the mean headline polarity in [-1, 1], or 0 when no
// headlines could be obtained.
func (e *Estimator) Score(ctx context.Context, symbol string) float64 {
	headlines, err := e.fetchHeadlines(ctx, symbol)
	if err != nil {
		e.logger.Warn("sentiment fetch failed, using neutral",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		return 0
	}
	return e.scoreHeadlines(headlines)
}

func (e *Estimator) fetchHeadlines(ctx context.Context, symbol string) ([]string, error) {
	query := provider.Issuer(symbol) + " stock"

	var body []byte
	err := e.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    e.feedURL,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"q": {query},
		},
	}, &body)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var headlines []string
	doc.Find("item title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		if title != "" {
			headlines = append(headlines, title)
		}
		return len(headlines) < e.maxHeadlines
	})
	return headlines, nil
}

// scoreHeadlines averages per-headline compound polarity. An empty set is
// neutral.
func (e *Estimator) scoreHeadlines(headlines []string) float64 {
	if len(headlines) == 0 {
		return 0
	}
	sum := 0.0
	for _, h := range headlines {
		sum += e.analyzer.PolarityScores(h).Compound
	}
	score := sum / float64(len(headlines))
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

var _ repository.SentimentEstimator = (*Estimator)(nil)
