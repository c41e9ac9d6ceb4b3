package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError codes.
const (
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeDatabase      = "DATABASE"
)

// AppError carries a stable code next to the failing operation.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDatabase     = errors.New("database error")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError reports an invalid setting; it matches ErrInvalidInput.
func ConfigError(message string) error {
	return NewAppError(CodeInvalidConfig, message, ErrInvalidInput)
}

// DatabaseError tags a driver failure during op. The result matches both
// ErrDatabase and err.
func DatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewAppError(CodeDatabase, op, fmt.Errorf("%w: %w", ErrDatabase, err))
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func NotFoundError(message string) error {
	return status.Error(codes.NotFound, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return InvalidArgumentError(fmt.Sprintf(format, args...))
}

func InternalErrorf(format string, args ...interface{}) error {
	return InternalError(fmt.Sprintf(format, args...))
}
