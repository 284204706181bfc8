package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ipo-auth/internal/model"
)

// AuthService is a mock of the credential service consumed by transports.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error) {
	ret := m.Called(ctx, req)
	return ret.Get(0).(model.User), ret.String(1), ret.Error(2)
}

func (m *AuthService) Login(ctx context.Context, creds model.Credentials) (string, error) {
	ret := m.Called(ctx, creds)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, token string) (model.SessionClaims, error) {
	ret := m.Called(ctx, token)
	return ret.Get(0).(model.SessionClaims), ret.Error(1)
}

func (m *AuthService) Profile(ctx context.Context, userID string) (model.User, error) {
	ret := m.Called(ctx, userID)
	return ret.Get(0).(model.User), ret.Error(1)
}
