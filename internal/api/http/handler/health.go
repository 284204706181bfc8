package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/ipo-auth/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the user store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health. A nil pinger means there is nothing to check.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(c echo.Context) error {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Warn("Health handler: store unreachable", "error", err.Error())
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
