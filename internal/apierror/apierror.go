// Package apierror maps domain errors onto the messages and status codes
// returned by the HTTP and gRPC transports.
package apierror

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/dtroode/ipo-auth/internal/model"
)

// Error kinds reported to clients.
const (
	KindUserNotFound      = "user_not_found"
	KindEmailNotFound     = "email_not_found"
	KindInvalidPassword   = "invalid_password"
	KindUserAlreadyExists = "user_already_exists"
	KindTokenExpired      = "token_expired"
	KindTokenInvalid      = "token_invalid"
	KindInvalidInput      = "invalid_input"
	KindStoreUnavailable  = "store_unavailable"
	KindInternal          = "internal"
)

// APIError is the client-facing form of an error. Message never contains
// details of the underlying cause.
type APIError struct {
	Kind       string
	Message    string
	HTTPStatus int
	GRPCCode   codes.Code
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrUserNotFound = &APIError{
		Kind:       KindUserNotFound,
		Message:    "User not found. Please sign up first.",
		HTTPStatus: http.StatusNotFound,
		GRPCCode:   codes.NotFound,
	}
	ErrEmailNotFound = &APIError{
		Kind:       KindEmailNotFound,
		Message:    "User email not found. Please check and try again.",
		HTTPStatus: http.StatusNotFound,
		GRPCCode:   codes.NotFound,
	}
	ErrInvalidPassword = &APIError{
		Kind:       KindInvalidPassword,
		Message:    "Incorrect password. Please try again.",
		HTTPStatus: http.StatusUnauthorized,
		GRPCCode:   codes.Unauthenticated,
	}
	ErrUserAlreadyExists = &APIError{
		Kind:       KindUserAlreadyExists,
		Message:    "User already exists. Please log in instead.",
		HTTPStatus: http.StatusConflict,
		GRPCCode:   codes.AlreadyExists,
	}
	ErrTokenExpired = &APIError{
		Kind:       KindTokenExpired,
		Message:    "Token has expired.",
		HTTPStatus: http.StatusUnauthorized,
		GRPCCode:   codes.Unauthenticated,
	}
	ErrTokenInvalid = &APIError{
		Kind:       KindTokenInvalid,
		Message:    "Invalid token.",
		HTTPStatus: http.StatusUnauthorized,
		GRPCCode:   codes.Unauthenticated,
	}
	ErrInvalidInput = &APIError{
		Kind:       KindInvalidInput,
		Message:    "Invalid request.",
		HTTPStatus: http.StatusBadRequest,
		GRPCCode:   codes.InvalidArgument,
	}
	ErrStoreUnavailable = &APIError{
		Kind:       KindStoreUnavailable,
		Message:    "Database error occurred.",
		HTTPStatus: http.StatusInternalServerError,
		GRPCCode:   codes.Internal,
	}
	ErrInternal = &APIError{
		Kind:       KindInternal,
		Message:    "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError,
		GRPCCode:   codes.Internal,
	}
)

// NewInvalidInput returns an InvalidInput error with a client-safe detail,
// typically a validation message.
func NewInvalidInput(detail string) *APIError {
	e := *ErrInvalidInput
	if detail != "" {
		e.Message = detail
	}
	return &e
}

// From classifies err. It never returns nil for a non-nil err; unknown errors
// become ErrInternal.
func From(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, model.ErrEmailNotFound):
		return ErrEmailNotFound
	case errors.Is(err, model.ErrInvalidPassword):
		return ErrInvalidPassword
	case errors.Is(err, model.ErrUserAlreadyExists):
		return ErrUserAlreadyExists
	case errors.Is(err, model.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, model.ErrTokenInvalid):
		return ErrTokenInvalid
	case errors.Is(err, model.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, model.ErrStoreUnavailable):
		return ErrStoreUnavailable
	default:
		return ErrInternal
	}
}
