package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ipo-auth/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserStore) Exists(ctx context.Context, userID string) (bool, error) {
	ret := m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	ret := m.Called(ctx, userID)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}
