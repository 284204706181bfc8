package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContextManager) SetUserIDToContext(ctx context.Context, userID string) context.Context {
	ret := m.Called(ctx, userID)
	return ret.Get(0).(context.Context)
}

func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (string, bool) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Bool(1)
}
