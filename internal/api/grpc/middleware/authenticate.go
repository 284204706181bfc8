package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ipo-auth/internal/apierror"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
)

const missingTokenMessage = "Missing authorization token."

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (string, error)
}

// Authenticate validates bearer tokens and injects user ID into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the "authorization: Bearer <token>" metadata, verifies the
// token and returns a context carrying its user ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	tokenString, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, missingTokenMessage)
	}

	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate: token rejected", "error", err.Error())
		apiErr := apierror.From(err)
		if apiErr.GRPCCode != codes.Unauthenticated {
			apiErr = apierror.ErrTokenInvalid
		}
		return nil, status.Error(codes.Unauthenticated, apiErr.Message)
	}
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, apierror.ErrTokenInvalid.Message)
	}

	return m.contextManager.SetUserIDToContext(ctx, userID), nil
}
