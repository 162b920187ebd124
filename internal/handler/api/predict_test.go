package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	xlogger "StockMind/pkg/logger"

	"github.com/labstack/echo/v4"
)

func testHandler(t *testing.T) *PredictHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewPredictHandler(l, nil, 30*time.Second)
}

func TestPredictRejectsMissingSymbol(t *testing.T) {
	h := testHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, "/api/predict_stock", strings.NewReader(`{"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Errors travel in the response envelope, not the transport status.
	if !strings.Contains(rec.Body.String(), `"status":400`) {
		t.Fatalf("expected envelope status 400, got: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ERR_REQUIRED") {
		t.Fatalf("expected required-field error, got: %s", rec.Body.String())
	}
}

func TestPredictRejectsNegativeBuyPrice(t *testing.T) {
	h := testHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, "/api/predict_stock", strings.NewReader(`{"symbol":"TCS","buy_price":-5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"status":400`) {
		t.Fatalf("expected envelope status 400, got: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ERR_GTE") {
		t.Fatalf("expected gte validation error, got: %s", rec.Body.String())
	}
}

func TestPredictRejectsZeroQuantity(t *testing.T) {
	h := testHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	// An explicit zero must fail validation, not be rewritten to the
	// default of 1.
	req := httptest.NewRequest(http.MethodPost, "/api/predict_stock", strings.NewReader(`{"symbol":"TCS","quantity":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"status":400`) {
		t.Fatalf("expected envelope status 400, got: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ERR_GTE") {
		t.Fatalf("expected gte validation error, got: %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t)
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
