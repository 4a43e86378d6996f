package errors

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/2HgO/fixedfloat-go/fixedfloat"
	"github.com/go-playground/validator/v10"
)

type ErrorType string

const (
	ErrNotFound         ErrorType = "ENTRY_NOT_FOUND_ERROR"
	ErrValidation       ErrorType = "VALIDATION_ERROR"
	ErrEntryExists      ErrorType = "ENTRY_EXISTS_ERROR"
	ErrExpiredToken     ErrorType = "EXPIRED_TOKEN_ERROR"
	ErrAuthentication   ErrorType = "AUTHENTICATION_ERROR"
	ErrInvalidToken     ErrorType = "INVALID_TOKEN_ERROR"
	ErrExchangeRejected ErrorType = "EXCHANGE_REJECTED_ERROR"
	ErrUnavailable      ErrorType = "SERVICE_UNAVAILABLE_ERROR"
	ErrFatal            ErrorType = "FATAL_ERROR"
)

type AppError struct {
	Code     int       `json:"-"`
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Internal string    `json:"internal,omitempty"`
}

func (a AppError) Error() string {
	return fmt.Sprintf("%s: %s", a.Type, a.Message)
}

func (a AppError) Serialize(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.Code)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		panic(a)
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func HandleDataDBError(err error) AppError {
	if Is(err, sql.ErrNoRows) {
		return NewNotFoundError("resource not found")
	}
	return NewFatalError(err)
}

// HandleGatewayError maps exchange client failures onto API errors. Only a
// rejection by the exchange is something the caller can act on.
func HandleGatewayError(err error) AppError {
	var (
		appErr    *fixedfloat.ApplicationError
		transport *fixedfloat.TransportError
		decodeErr *fixedfloat.DecodeError
		signErr   *fixedfloat.SigningError
	)
	switch {
	case errors.As(err, &appErr):
		return AppError{
			Code:     http.StatusBadRequest,
			Type:     ErrExchangeRejected,
			Message:  appErr.Message,
			Internal: err.Error(),
		}
	case errors.As(err, &transport), errors.As(err, &decodeErr):
		return AppError{
			Code:     http.StatusServiceUnavailable,
			Type:     ErrUnavailable,
			Message:  "exchange is currently unavailable",
			Internal: err.Error(),
		}
	case errors.As(err, &signErr):
		return NewFatalError(err)
	}
	return AsAppError(err)
}

func HandleBindError(err error) AppError {
	if errors.As(err, &AppError{}) {
		return AsAppError(err)
	}

	if v, ok := err.(validator.ValidationErrors); ok {
		var message string
		switch v[0].ActualTag() {
		case "required":
			message = fmt.Sprintf("%s is required", v[0].Field())
		case "required_without":
			message = fmt.Sprintf("%s is required when %s is not provided", v[0].Field(), v[0].Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of values: (%s), value received: %s", v[0].Field(), v[0].Param(), v[0].Value())
		case "min", "max":
			message = fmt.Sprintf("%s must be of length %s (%s)", v[0].Field(), v[0].ActualTag(), v[0].Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than (%s), value received: %s", v[0].Field(), v[0].Param(), v[0].Value())
		case "decimal":
			message = fmt.Sprintf("%s must be a positive decimal amount, value received: %s", v[0].Field(), v[0].Value())
		default:
			message = fmt.Sprintf("Validation failed on field { %s }, Condition: %s", v[0].Field(), v[0].ActualTag())
			if v[0].Param() != "" {
				message += fmt.Sprintf("{ %s }", v[0].Param())
			}
			if v[0].Value() != "" && v[0].Value() != nil {
				message += fmt.Sprintf(", Value Received: %v", v[0].Value())
			}
		}

		return AppError{
			Code:     http.StatusBadRequest,
			Type:     ErrValidation,
			Message:  message,
			Internal: err.Error(),
		}
	}
	if Is(err, io.EOF) {
		return NewValidationError("No request body")
	}

	vErr := NewValidationError("invalid request received")
	vErr.Internal = err.Error()

	return vErr
}

func NewValidationError(msg string) AppError {
	return AppError{
		Code:    http.StatusBadRequest,
		Type:    ErrValidation,
		Message: msg,
	}
}

func NewNotFoundError(msg string) AppError {
	return AppError{
		Code:    http.StatusNotFound,
		Type:    ErrNotFound,
		Message: msg,
	}
}

func NewAuthenticationError(msg string) AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrAuthentication,
		Message: msg,
	}
}

func NewInvalidTokenError() AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrInvalidToken,
		Message: "Invalid token",
	}
}

func NewFatalError(err error) AppError {
	return AppError{
		Code:     http.StatusInternalServerError,
		Type:     ErrFatal,
		Message:  "Oops! something happened on our end.",
		Internal: err.Error(),
	}
}

func NewExpiredTokenError() AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrExpiredToken,
		Message: "Token has expired",
	}
}

func NewEntryExistsError(msg string) AppError {
	return AppError{
		Code:    http.StatusConflict,
		Type:    ErrEntryExists,
		Message: msg,
	}
}

func AsAppError(err error) AppError {
	apperr := new(AppError)
	if errors.As(err, apperr) {
		return *apperr
	}
	return NewFatalError(err)
}
