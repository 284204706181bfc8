package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ipo-auth/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenManager) Issue(claims model.SessionClaims) (string, error) {
	ret := m.Called(claims)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) Verify(token string) (model.SessionClaims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.SessionClaims), ret.Error(1)
}
