package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TokenService is a mock of the token resolver used by auth middleware.
type TokenService struct {
	mock.Mock
}

func NewTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenService {
	m := &TokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenService) GetUserID(ctx context.Context, token string) (string, error) {
	ret := m.Called(ctx, token)
	return ret.String(0), ret.Error(1)
}
