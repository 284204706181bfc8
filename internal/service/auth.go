package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/metrics"
	"github.com/dtroode/ipo-auth/internal/model"
)

// DefaultStoreTimeout bounds every user store call.
const DefaultStoreTimeout = 5 * time.Second

// Auth registers accounts and checks credentials.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	storeTimeout time.Duration
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

// WithStoreTimeout sets the deadline applied to each store call.
func WithStoreTimeout(d time.Duration) AuthOption {
	return func(a *Auth) {
		if d > 0 {
			a.storeTimeout = d
		}
	}
}

// WithMetrics enables outcome counters.
func WithMetrics(m *metrics.Metrics) AuthOption {
	return func(a *Auth) {
		a.metrics = m
	}
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
	opts ...AuthOption,
) *Auth {
	a := &Auth{
		userStore:    userStore,
		hasher:       hasher,
		storeTimeout: DefaultStoreTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.tokenService = NewTokenService(tokenManager, logger, a.metrics)
	return a
}

// Tokens returns the token service used by Auth.
func (a *Auth) Tokens() *TokenService {
	return a.tokenService
}

// Signup creates an account and returns it along with a session token.
func (a *Auth) Signup(ctx context.Context, req model.SignupRequest) (user model.User, token string, err error) {
	defer func() { a.metrics.Record(metrics.OpSignup, outcome(err)) }()

	a.logger.Debug("Auth service: starting signup",
		"user_id", req.UserID)

	exists, err := a.exists(ctx, req.UserID)
	if err != nil {
		a.logger.Error("Auth service: failed to check user existence",
			"user_id", req.UserID,
			"error", err.Error())
		return model.User{}, "", storeError("failed to check user existence", err)
	}
	if exists {
		a.logger.Info("Auth service: user already exists",
			"user_id", req.UserID)
		return model.User{}, "", model.ErrUserAlreadyExists
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"user_id", req.UserID,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	saved, err := a.create(ctx, model.User{
		ID:           uuid.New(),
		UserID:       req.UserID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, model.ErrDuplicateKey) {
		a.logger.Info("Auth service: user created concurrently",
			"user_id", req.UserID)
		return model.User{}, "", model.ErrUserAlreadyExists
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"user_id", req.UserID,
			"error", err.Error())
		return model.User{}, "", storeError("failed to create user", err)
	}

	token, err = a.tokenService.Issue(ctx, saved.UserID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: signup completed",
		"user_id", saved.UserID)

	return saved, token, nil
}

// Login checks credentials and returns a session token.
//
// The user id must exist and the email must belong to some stored account.
// The token is bound to the account found by email.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (token string, err error) {
	defer func() { a.metrics.Record(metrics.OpLogin, outcome(err)) }()

	a.logger.Debug("Auth service: starting login",
		"user_id", creds.UserID)

	exists, err := a.exists(ctx, creds.UserID)
	if err != nil {
		a.logger.Error("Auth service: failed to check user existence",
			"user_id", creds.UserID,
			"error", err.Error())
		return "", storeError("failed to check user existence", err)
	}
	if !exists {
		a.logger.Info("Auth service: user not found",
			"user_id", creds.UserID)
		return "", model.ErrUserNotFound
	}

	user, err := a.getByEmail(ctx, creds.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: email not found",
			"user_id", creds.UserID)
		return "", model.ErrEmailNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"user_id", creds.UserID,
			"error", err.Error())
		return "", storeError("failed to get user by email", err)
	}

	if !a.hasher.Verify(creds.Password, user.PasswordHash) {
		a.logger.Info("Auth service: invalid password",
			"user_id", creds.UserID)
		return "", model.ErrInvalidPassword
	}

	token, err = a.tokenService.Issue(ctx, user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"user_id", user.UserID)

	return token, nil
}

// Authenticate verifies a session token.
func (a *Auth) Authenticate(ctx context.Context, token string) (model.SessionClaims, error) {
	return a.tokenService.Verify(ctx, token)
}

// Profile returns the stored account of an authenticated user.
func (a *Auth) Profile(ctx context.Context, userID string) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()

	user, err := a.userStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, storeError("failed to get user", err)
	}
	return user, nil
}

func (a *Auth) exists(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()
	return a.userStore.Exists(ctx, userID)
}

func (a *Auth) getByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()
	return a.userStore.GetByEmail(ctx, email)
}

func (a *Auth) create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, a.storeTimeout)
	defer cancel()
	return a.userStore.Create(ctx, user)
}

// storeError classifies an unexpected store failure as ErrStoreUnavailable
// while keeping the cause for logs.
func storeError(msg string, err error) error {
	if errors.Is(err, model.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, model.ErrStoreUnavailable, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, model.ErrUserAlreadyExists):
		return metrics.OutcomeUserExists
	case errors.Is(err, model.ErrUserNotFound):
		return metrics.OutcomeUserNotFound
	case errors.Is(err, model.ErrEmailNotFound):
		return metrics.OutcomeEmailNotFound
	case errors.Is(err, model.ErrInvalidPassword):
		return metrics.OutcomeInvalidPassword
	case errors.Is(err, model.ErrTokenExpired):
		return metrics.OutcomeTokenExpired
	case errors.Is(err, model.ErrTokenInvalid):
		return metrics.OutcomeTokenInvalid
	case errors.Is(err, model.ErrStoreUnavailable):
		return metrics.OutcomeStoreUnavailable
	default:
		return metrics.OutcomeError
	}
}
