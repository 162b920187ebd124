package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xlogger "StockMind/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func rssFeed(titles ...string) string {
	body := `<?xml version="1.0"?><rss version="2.0"><channel>`
	for _, title := range titles {
		body += "<item><title>" + title + "</title><link>http://example.com</link></item>"
	}
	return body + "</channel></rss>"
}

func TestScorePositiveHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "TCS stock" {
			t.Errorf("expected issuer query, got %q", q)
		}
		w.Write([]byte(rssFeed(
			"TCS reports excellent record profits",
			"Analysts praise TCS outstanding growth",
			"TCS wins major contract, shares surge",
		)))
	}))
	defer srv.Close()

	e := New(srv.URL, 5, time.Second, testLogger(t))
	score := e.Score(context.Background(), "TCS.NS")
	if score <= 0 {
		t.Fatalf("expected positive sentiment, got %v", score)
	}
	if score > 1 {
		t.Fatalf("score above bound: %v", score)
	}
}

func TestScoreNegativeHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(rssFeed(
			"Company faces terrible losses and fraud allegations",
			"Disaster quarter: shares crash badly",
		)))
	}))
	defer srv.Close()

	e := New(srv.URL, 5, time.Second, testLogger(t))
	score := e.Score(context.Background(), "XYZ")
	if score >= 0 {
		t.Fatalf("expected negative sentiment, got %v", score)
	}
	if score < -1 {
		t.Fatalf("score below bound: %v", score)
	}
}

func TestScoreFeedFailureIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := New(srv.URL, 5, time.Second, testLogger(t))
	if score := e.Score(context.Background(), "TCS"); score != 0 {
		t.Fatalf("expected neutral score on failure, got %v", score)
	}
}

func TestScoreEmptyFeedIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(rssFeed()))
	}))
	defer srv.Close()

	e := New(srv.URL, 5, time.Second, testLogger(t))
	if score := e.Score(context.Background(), "TCS"); score != 0 {
		t.Fatalf("expected neutral score for empty feed, got %v", score)
	}
}
