package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/ipo-auth/internal/apierror"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (string, error)
}

var errMissingToken = &apierror.APIError{
	Kind:       apierror.KindTokenInvalid,
	Message:    "Missing authorization token.",
	HTTPStatus: apierror.ErrTokenInvalid.HTTPStatus,
	GRPCCode:   apierror.ErrTokenInvalid.GRPCCode,
}

// Authenticate validates the bearer token and stores its user ID in the
// request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		scheme, tokenString, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			return errMissingToken
		}

		ctx := c.Request().Context()
		userID, err := m.tokenService.GetUserID(ctx, tokenString)
		if err != nil {
			m.logger.Debug("Authenticate: token rejected", "error", err.Error())
			if apiErr := apierror.From(err); apiErr == apierror.ErrTokenExpired {
				return apiErr
			}
			return apierror.ErrTokenInvalid
		}
		if userID == "" {
			return apierror.ErrTokenInvalid
		}

		c.SetRequest(c.Request().WithContext(m.contextManager.SetUserIDToContext(ctx, userID)))
		return next(c)
	}
}
