// Package memory provides an in-process user store. It keeps no data across
// restarts and is meant for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/ipo-auth/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	ordered []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID: make(map[string]model.User),
	}
}

func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[userID]
	return ok, nil
}

// GetByEmail returns the earliest stored user with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.ordered {
		if u := r.byID[id]; u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

// Create stores user. The uniqueness check and the insert happen under one
// lock, so concurrent creates of the same UserID cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.UserID]; ok {
		return model.User{}, model.ErrDuplicateKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byID[user.UserID] = user
	r.ordered = append(r.ordered, user.UserID)

	return user, nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}
