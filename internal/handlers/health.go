package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waypointhq/waypoint/internal/healthcheck"
)

// HealthHandler reports aggregate runtime health.
type HealthHandler struct {
	checkers []healthcheck.Checker
	logger   *slog.Logger
}

// NewHealthHandler creates a HealthHandler over the given checkers.
func NewHealthHandler(log *slog.Logger, checkers []healthcheck.Checker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		logger:   log.With(slog.String("handler", "health")),
	}
}

// Register registers health routes.
func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.HEAD("/health", h.HealthHead)
}

type healthResponse struct {
	Status string                    `json:"status"`
	Checks []healthcheck.CheckResult `json:"checks"`
}

// Health runs every checker and reports per-component results. A degraded
// stack still answers 200 so load balancers keep routing; only a hard error
// flips the status code.
func (h *HealthHandler) Health(c echo.Context) error {
	checks := make([]healthcheck.CheckResult, 0, len(h.checkers))
	for _, checker := range h.checkers {
		checks = append(checks, checker.ListChecks(c.Request().Context())...)
	}
	status := healthcheck.Aggregate(checks)
	code := http.StatusOK
	if status == healthcheck.StatusError {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, healthResponse{Status: status, Checks: checks})
}

// HealthHead is a body-less liveness probe.
func (h *HealthHandler) HealthHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
