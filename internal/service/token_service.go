package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/metrics"
	"github.com/dtroode/ipo-auth/internal/model"
)

// TokenService issues session tokens and resolves them back to users.
// It composes the TokenManager with logging and metrics.
type TokenService struct {
	manager model.TokenManager
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger, m *metrics.Metrics) *TokenService {
	return &TokenService{manager: manager, logger: logger, metrics: m}
}

// Issue creates a session token bound to userID.
func (s *TokenService) Issue(_ context.Context, userID string) (string, error) {
	token, err := s.manager.Issue(model.SessionClaims{UserID: userID})
	if err != nil {
		s.logger.Error("Token service: failed to issue token",
			"user_id", userID,
			"error", err.Error())
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return token, nil
}

// Verify checks a presented token and returns its claims.
func (s *TokenService) Verify(_ context.Context, token string) (claims model.SessionClaims, err error) {
	defer func() { s.metrics.Record(metrics.OpVerify, outcome(err)) }()

	claims, err = s.manager.Verify(token)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			s.logger.Debug("Token service: token expired")
		} else {
			s.logger.Debug("Token service: token rejected", "error", err.Error())
		}
		return model.SessionClaims{}, err
	}
	return claims, nil
}

// GetUserID returns the user a valid token was issued to.
func (s *TokenService) GetUserID(ctx context.Context, token string) (string, error) {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
