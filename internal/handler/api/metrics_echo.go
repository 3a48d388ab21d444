package api

import (
	models "TradeLens/internal/domain/models"
	"TradeLens/internal/usecase"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MetricsEchoHandler exposes the analytics bundle over Echo-based HTTP
// endpoints following Clean Architecture.
type MetricsEchoHandler struct {
	logger *xlogger.Logger
	dash   *usecase.DashboardUseCase
}

func NewMetricsEchoHandler(logger *xlogger.Logger, dash *usecase.DashboardUseCase) *MetricsEchoHandler {
	return &MetricsEchoHandler{logger: logger, dash: dash}
}

func (h *MetricsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/summary", h.Summary)
	g.GET("/streaks", h.Streaks)
	g.GET("/sessions", h.Sessions)
	g.GET("/cycles", h.Cycles)
	g.GET("/top", h.Top)
	g.GET("/health", h.Health)
}

// Dashboard returns the full metrics bundle for the requested filter.
func (h *MetricsEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.GetBundle(c.Request().Context(), req.Filter(), req.Limit)
	if err != nil {
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MetricsEchoHandler) Summary(c echo.Context) error {
	bundle, verr, err := h.bundle(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err != nil {
		h.logger.Error("summary usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, bundle.Summary)
}

func (h *MetricsEchoHandler) Streaks(c echo.Context) error {
	bundle, verr, err := h.bundle(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err != nil {
		h.logger.Error("streaks usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, bundle.Streaks)
}

func (h *MetricsEchoHandler) Sessions(c echo.Context) error {
	bundle, verr, err := h.bundle(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err != nil {
		h.logger.Error("sessions usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, bundle.Sessions)
}

func (h *MetricsEchoHandler) Cycles(c echo.Context) error {
	bundle, verr, err := h.bundle(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err != nil {
		h.logger.Error("cycles usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, bundle.Cycles)
}

// Top returns a single leaderboard keyed by symbol, timeframe or agent.
func (h *MetricsEchoHandler) Top(c echo.Context) error {
	req := &models.TopRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.GetTop(c.Request().Context(), req.Filter(), req.By, req.Limit)
	if err != nil {
		h.logger.Error("top usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MetricsEchoHandler) Health(c echo.Context) error {
	if err := h.dash.Health(c.Request().Context()); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("event store unreachable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *MetricsEchoHandler) bundle(c echo.Context) (*models.Bundle, interface{}, error) {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, verr, nil
	}
	bundle, err := h.dash.GetBundle(c.Request().Context(), req.Filter(), req.Limit)
	return bundle, nil, err
}
