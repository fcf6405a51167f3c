package api

import (
	"encoding/json"
	"errors"
	"io"

	"RankPull/internal/usecase"
	"RankPull/pkg/cache"
	xhttp "RankPull/pkg/http"
	xlogger "RankPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportEchoHandler exposes the invocation trigger and the latest report.
type ReportEchoHandler struct {
	logger *xlogger.Logger
	runner *usecase.ReportRunner
}

func NewReportEchoHandler(logger *xlogger.Logger, runner *usecase.ReportRunner) *ReportEchoHandler {
	return &ReportEchoHandler{logger: logger, runner: runner}
}

func (h *ReportEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/report/trigger", h.Trigger)
	g.GET("/report/latest", h.Latest)
	e.GET("/healthz", h.Health)
}

// Trigger runs one invocation synchronously. The request body is an opaque
// trigger event echoed back unchanged once the invocation finishes.
func (h *ReportEchoHandler) Trigger(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	event := json.RawMessage(body)
	if len(event) == 0 {
		event = json.RawMessage(`{}`)
	} else if !json.Valid(event) {
		return xhttp.BadRequestResponse(c, "trigger event must be valid JSON")
	}

	event, err = h.runner.Handle(c.Request().Context(), event)
	if err != nil {
		h.logger.Error("trigger invocation failed", xlogger.Error(err))
		return xhttp.BadGatewayResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, event)
}

// Latest serves the last generated result set.
func (h *ReportEchoHandler) Latest(c echo.Context) error {
	rs, err := h.runner.Latest(c.Request().Context())
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return xhttp.NotFoundResponse(c, "no report generated yet")
		}
		h.logger.Error("latest report lookup failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, rs)
}

// Health is a liveness probe.
func (h *ReportEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
