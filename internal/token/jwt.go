package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/ipo-auth/internal/model"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 15 * time.Minute

// Claims represents JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// Option configures a JWT manager.
type Option func(*JWT)

// WithClock replaces the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetime. A non-positive ttl selects DefaultTTL.
func NewJWT(secretKey []byte, ttl time.Duration, opts ...Option) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	j := &JWT{
		secretKey: secretKey,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs a session token for claims.UserID valid for the configured TTL.
func (j *JWT) Issue(claims model.SessionClaims) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("failed to sign session token: empty user id")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: claims.UserID,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// It returns model.ErrTokenExpired for an expired but otherwise valid token
// and model.ErrTokenInvalid for anything else.
func (j *JWT) Verify(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.SessionClaims{}, fmt.Errorf("failed to parse session token: %w", model.ErrTokenExpired)
		}
		return model.SessionClaims{}, fmt.Errorf("failed to parse session token: %w", model.ErrTokenInvalid)
	}
	if !token.Valid {
		return model.SessionClaims{}, fmt.Errorf("session token is invalid: %w", model.ErrTokenInvalid)
	}
	if claims.UserID == "" {
		return model.SessionClaims{}, fmt.Errorf("session token has no user id: %w", model.ErrTokenInvalid)
	}

	out := model.SessionClaims{
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// TTL returns the lifetime of issued tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}
