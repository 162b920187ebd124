package api

import (
	"context"
	"net/http"
	"time"

	models "StockMind/internal/domain/models"
	"StockMind/internal/usecase"
	xhttp "StockMind/pkg/http"
	xlogger "StockMind/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictHandler exposes the recommendation pipeline over Echo.
type PredictHandler struct {
	logger  *xlogger.Logger
	advisor *usecase.Advisor
	budget  time.Duration
}

func NewPredictHandler(logger *xlogger.Logger, advisor *usecase.Advisor, budget time.Duration) *PredictHandler {
	if budget <= 0 {
		budget = 30 * time.Second
	}
	return &PredictHandler{logger: logger, advisor: advisor, budget: budget}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict_stock", h.Predict)
	g.GET("/health", h.Health)
}

func (h *PredictHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.budget)
	defer cancel()

	rec, err := h.advisor.Advise(ctx, *req)
	if err != nil {
		h.logger.Error("advise usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *PredictHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
