package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes carried in every error response.
const (
	CodeValidationError     = "validation_error"
	CodeBadRequest          = "bad_request"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeUnauthorized        = "unauthorized"
	CodeRateLimitExceeded   = "rate_limit_exceeded"
	CodeInternalServerError = "internal_server_error"
	CodeServiceUnavailable  = "service_unavailable"
)

// Common error sentinel values
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// FieldError describes a single failing field in a validation error.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ApiErr struct {
	StatusCode int
	Code       string // machine-readable code for the response body
	err        error
	Details    string       // Additional details about the error
	Fields     []FieldError // Failing fields (for validation errors)
	RetryAfter int          // Seconds until retry is allowed (for rate limiting)
	Cause      error        // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Common error constructors with appropriate HTTP status codes
func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, Code: CodeBadRequest, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, err: ErrUnauthorized, Details: message}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalServerError,
		err:        errors.New(message),
		Cause:      cause,
	}
}

func NewConflictError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, Code: CodeConflict, err: errors.New(message)}
}
