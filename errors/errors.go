package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable kind of an application error
type ErrorCode string

const (
	// Engine error kinds
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeGuardedDeletion   ErrorCode = "GUARDED_DELETION"

	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// Validation detail
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"
)

// AppError is an error that carries a kind and a message safe to show to callers
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is, or wraps, an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the first AppError in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Kind returns the code of the AppError in err's chain, or DB_ERROR for anything else.
func Kind(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr := GetAppError(err); appErr != nil {
		switch appErr.Code {
		case ErrCodeRequiredField, ErrCodeInvalidFormat:
			return ErrCodeValidation
		case ErrCodeInvalidToken:
			return ErrCodeUnauthorized
		}
		return appErr.Code
	}
	return ErrCodeDBError
}

var (
	// Reservation errors
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrRoomInactive      = errors.New("room inactive")

	// Lookup / persistence errors
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate value")

	// Deletion guards
	ErrActiveReservations = errors.New("has active reservations")
	ErrGuestInHouse       = errors.New("guest checked in")

	// Auth errors
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidPassword = errors.New("invalid password")
)

func Validation(message string, err error) *AppError {
	return NewAppError(ErrCodeValidation, message, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(ErrCodeConflict, message, err)
}

func InvalidTransition(message string) *AppError {
	return NewAppError(ErrCodeInvalidTransition, message, ErrInvalidTransition)
}

func NotFound(entity string, id uint) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s %d not found", entity, id), ErrNotFound)
}

func GuardedDeletion(message string, err error) *AppError {
	return NewAppError(ErrCodeGuardedDeletion, message, err)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, ErrUnauthorized)
}

func DBError(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}
