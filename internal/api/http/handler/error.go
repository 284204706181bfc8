package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/ipo-auth/internal/apierror"
	"github.com/dtroode/ipo-auth/internal/logger"
)

type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// ErrorHandler renders handler errors as {"code", "detail"} bodies. Echo's
// own errors (unknown route, wrong method) keep their status.
func ErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			writeError(c, he.Code, errorResponse{Code: "http_error", Detail: http.StatusText(he.Code)})
			return
		}

		apiErr := apierror.From(err)
		if apiErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("HTTP handler: request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err.Error())
		}
		writeError(c, apiErr.HTTPStatus, errorResponse{Code: apiErr.Kind, Detail: apiErr.Message})
	}
}

func writeError(c echo.Context, status int, body errorResponse) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
