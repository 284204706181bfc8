// Package handler implements the HTTP endpoints of the auth service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/ipo-auth/internal/apierror"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
)

// AuthService defines account registration, login and profile lookup.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error)
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Profile(ctx context.Context, userID string) (model.User, error)
}

type signupRequest struct {
	UserID    string `json:"user_id" validate:"required,max=255"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email_shape"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
}

type loginRequest struct {
	UserID   string `json:"user_id" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email_shape"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type profileResponse struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Signup handles POST /signup.
func (h *Auth) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, token, err := h.authService.Signup(c.Request().Context(), model.SignupRequest{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Message: model.SignupMessage, Token: token})
}

// Login handles POST /login.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), model.Credentials{
		UserID:   req.UserID,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Message: model.LoginMessage, Token: token})
}

// Me handles GET /me for an authenticated caller.
func (h *Auth) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return apierror.ErrTokenInvalid
	}

	user, err := h.authService.Profile(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC(),
	})
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apierror.NewInvalidInput("Invalid request body")
	}
	return c.Validate(dst)
}
