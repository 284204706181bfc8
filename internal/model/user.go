package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
//
// Create must reject a second record with the same UserID atomically and
// report it as ErrDuplicateKey.
type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUserID(ctx context.Context, userID string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored account.
type User struct {
	ID           uuid.UUID
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Credentials carries login input. It is never persisted.
type Credentials struct {
	UserID   string
	Email    string
	Password string
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Messages returned to clients on success.
const (
	SignupMessage = "The user has been added to the database."
	LoginMessage  = "Welcome"
)
