package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ipo-auth/internal/api/grpc/authv1"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
)

// AuthService defines account registration, login and token checks.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error)
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Authenticate(ctx context.Context, token string) (model.SessionClaims, error)
	Profile(ctx context.Context, userID string) (model.User, error)
}

// Validator checks decoded request messages.
type Validator interface {
	Validate(i any) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	authv1.UnimplementedAuthServer
	authService    AuthService
	contextManager model.ContextManager
	validator      Validator
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	contextManager model.ContextManager,
	validator Validator,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		validator:      validator,
		logger:         logger,
	}
}

// Signup registers a new account and returns a session token.
func (h *Auth) Signup(ctx context.Context, req *authv1.SignupRequest) (*authv1.SignupResponse, error) {
	h.logger.Debug("Auth handler: processing signup request",
		"user_id", req.UserID)

	if err := h.validator.Validate(req); err != nil {
		return nil, handleError(err)
	}

	_, token, err := h.authService.Signup(ctx, model.SignupRequest{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: signup failed",
			"user_id", req.UserID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authv1.SignupResponse{
		Message: model.SignupMessage,
		Token:   token,
	}, nil
}

// Login checks credentials and returns a session token.
func (h *Auth) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	h.logger.Debug("Auth handler: processing login request",
		"user_id", req.UserID)

	if err := h.validator.Validate(req); err != nil {
		return nil, handleError(err)
	}

	token, err := h.authService.Login(ctx, model.Credentials{
		UserID:   req.UserID,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"user_id", req.UserID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authv1.LoginResponse{
		Message: model.LoginMessage,
		Token:   token,
	}, nil
}

// VerifyToken reports the claims of a valid session token.
func (h *Auth) VerifyToken(ctx context.Context, req *authv1.VerifyTokenRequest) (*authv1.VerifyTokenResponse, error) {
	if err := h.validator.Validate(req); err != nil {
		return nil, handleError(err)
	}

	claims, err := h.authService.Authenticate(ctx, req.Token)
	if err != nil {
		return nil, handleError(err)
	}

	return &authv1.VerifyTokenResponse{
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

// Profile returns the account of the caller. Requires authentication.
func (h *Auth) Profile(ctx context.Context, _ *authv1.ProfileRequest) (*authv1.ProfileResponse, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Missing authorization token.")
	}

	user, err := h.authService.Profile(ctx, userID)
	if err != nil {
		h.logger.Error("Auth handler: profile lookup failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authv1.ProfileResponse{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
