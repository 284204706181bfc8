package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ipo-auth/internal/api/grpc/authv1"
	"github.com/dtroode/ipo-auth/internal/api/validation"
	"github.com/dtroode/ipo-auth/internal/mocks"
	"github.com/dtroode/ipo-auth/internal/model"
	"github.com/dtroode/ipo-auth/internal/testutil"
)

func validSignup() *authv1.SignupRequest {
	return &authv1.SignupRequest{
		UserID:    "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cret!",
	}
}

func newHandler(t *testing.T) (*Auth, *mocks.AuthService, *mocks.ContextManager) {
	t.Helper()
	svc := mocks.NewAuthService(t)
	cm := mocks.NewContextManager(t)
	return NewAuth(svc, cm, validation.New(), testutil.MakeNoopLogger()), svc, cm
}

func TestAuth_Signup(t *testing.T) {
	t.Parallel()

	h, svc, _ := newHandler(t)
	req := validSignup()

	svc.On("Signup", mock.Anything, model.SignupRequest{
		UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "s3cret!",
	}).Return(model.User{UserID: "u1"}, "signed", nil).Once()

	out, err := h.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "The user has been added to the database.", out.Message)
	assert.Equal(t, "signed", out.Token)
}

func TestAuth_Signup_Errors(t *testing.T) {
	t.Parallel()

	t.Run("already exists", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Signup", mock.Anything, mock.Anything).Return(model.User{}, "", model.ErrUserAlreadyExists).Once()

		_, err := h.Signup(context.Background(), validSignup())
		assert.Equal(t, codes.AlreadyExists, status.Code(err))
	})

	t.Run("invalid email never reaches service", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		req := validSignup()
		req.Email = "not-an-email"

		_, err := h.Signup(context.Background(), req)
		st, _ := status.FromError(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Equal(t, "Invalid email format", st.Message())
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		svcErr   error
		wantCode codes.Code
	}{
		{name: "success", wantCode: codes.OK},
		{name: "user not found", svcErr: model.ErrUserNotFound, wantCode: codes.NotFound},
		{name: "email not found", svcErr: model.ErrEmailNotFound, wantCode: codes.NotFound},
		{name: "invalid password", svcErr: model.ErrInvalidPassword, wantCode: codes.Unauthenticated},
		{name: "store unavailable", svcErr: model.ErrStoreUnavailable, wantCode: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, _ := newHandler(t)

			tok := ""
			if tt.svcErr == nil {
				tok = "signed"
			}
			svc.On("Login", mock.Anything, model.Credentials{UserID: "u1", Email: "ada@example.com", Password: "pw"}).
				Return(tok, tt.svcErr).Once()

			out, err := h.Login(context.Background(), &authv1.LoginRequest{UserID: "u1", Email: "ada@example.com", Password: "pw"})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.svcErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "Welcome", out.Message)
				assert.Equal(t, "signed", out.Token)
			}
		})
	}
}

func TestAuth_VerifyToken(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		iat := time.Unix(1_700_000_000, 0)
		svc.On("Authenticate", mock.Anything, "tok").
			Return(model.SessionClaims{UserID: "u1", IssuedAt: iat, ExpiresAt: iat.Add(15 * time.Minute)}, nil).Once()

		out, err := h.VerifyToken(context.Background(), &authv1.VerifyTokenRequest{Token: "tok"})
		require.NoError(t, err)
		assert.Equal(t, "u1", out.UserID)
		assert.Equal(t, int64(1_700_000_000), out.IssuedAt)
		assert.Equal(t, int64(1_700_000_900), out.ExpiresAt)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Authenticate", mock.Anything, "tok").Return(model.SessionClaims{}, model.ErrTokenExpired).Once()

		_, err := h.VerifyToken(context.Background(), &authv1.VerifyTokenRequest{Token: "tok"})
		st, _ := status.FromError(err)
		assert.Equal(t, codes.Unauthenticated, st.Code())
		assert.Equal(t, "Token has expired.", st.Message())
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newHandler(t)

		_, err := h.VerifyToken(context.Background(), &authv1.VerifyTokenRequest{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestAuth_Profile(t *testing.T) {
	t.Parallel()

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newHandler(t)
		ctx := context.Background()
		created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		cm.On("GetUserIDFromContext", ctx).Return("u1", true).Once()
		svc.On("Profile", ctx, "u1").
			Return(model.User{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", CreatedAt: created}, nil).Once()

		out, err := h.Profile(ctx, &authv1.ProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", out.Email)
		assert.Equal(t, "2024-05-01T10:00:00Z", out.CreatedAt)
	})

	t.Run("no user in context", func(t *testing.T) {
		t.Parallel()
		h, _, cm := newHandler(t)
		cm.On("GetUserIDFromContext", mock.Anything).Return("", false).Once()

		_, err := h.Profile(context.Background(), &authv1.ProfileRequest{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("account gone", func(t *testing.T) {
		t.Parallel()
		h, svc, cm := newHandler(t)
		cm.On("GetUserIDFromContext", mock.Anything).Return("u1", true).Once()
		svc.On("Profile", mock.Anything, "u1").Return(model.User{}, model.ErrUserNotFound).Once()

		_, err := h.Profile(context.Background(), &authv1.ProfileRequest{})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}
