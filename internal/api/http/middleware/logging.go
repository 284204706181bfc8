package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/ipo-auth/internal/logger"
)

// Logging logs one record per HTTP request. Bodies are never logged.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Render now so the logged status is the one sent.
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		latency := time.Since(start)

		level := slog.LevelInfo
		switch {
		case res.Status >= http.StatusInternalServerError:
			level = slog.LevelError
		case res.Status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		l.logger.Log(req.Context(), level, "HTTP request",
			"method", req.Method,
			"uri", req.URL.Path,
			"status", res.Status,
			"latency_ms", latency.Milliseconds(),
			"remote_ip", c.RealIP(),
			"request_id", res.Header().Get(echo.HeaderXRequestID))

		return nil
	}
}
