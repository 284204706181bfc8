package model

import "errors"

// Store-level errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Credential errors returned by the auth service.
var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailNotFound     = errors.New("email not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Token errors.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token malformed or tampered")
)

// ErrInvalidInput is returned by transports when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")
