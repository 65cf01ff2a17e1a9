package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/shapegen/pkg/inference"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeParseError   = "PARSE_ERROR"
	ErrCodeSelectError  = "SELECT_ERROR"
	ErrCodeLimit        = "LIMIT_EXCEEDED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapInferenceError converts an inference failure to a coded error. Errors
// that are not *inference.Error are reported as INTERNAL_ERROR.
func WrapInferenceError(err error) error {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	coded = &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
	var infErr *inference.Error
	if errors.As(err, &infErr) {
		coded.Message = infErr.Error()
		switch infErr.Kind {
		case inference.ErrorKindParse:
			coded.Code = ErrCodeParseError
		case inference.ErrorKindSelect:
			coded.Code = ErrCodeSelectError
		case inference.ErrorKindLimit:
			coded.Code = ErrCodeLimit
		}
	}

	slog.Warn("inference failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

func invalidInput(err error) error {
	return &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
}
