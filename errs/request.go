package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpiredToken = errors.New("expired access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidField     = errors.New("invalid field")
	ErrValidationFailed = errors.New("validation failed")
)

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		err:        ErrExpiredToken,
		Details:    "Access token has expired",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Access token is invalid",
	}
}

// NewMalformedPayloadError reports an unparseable request body.
func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
	}
}

// NewValidationError reports one or more failing fields as a 422 so the
// caller can surface per-field messages.
func NewValidationError(fields ...FieldError) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeValidationError,
		err:        ErrValidationFailed,
		Fields:     fields,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeValidationError,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Fields:     []FieldError{{Field: fieldName, Reason: reason}},
	}
}

// NewRateLimitError reports an exhausted rolling-window quota. retryAfter is
// how long until the oldest counted request falls out of the window.
func NewRateLimitError(retryAfter time.Duration) *ApiErr {
	secs := int(retryAfter.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		Code:       CodeRateLimitExceeded,
		err:        ErrRateLimited,
		Details:    fmt.Sprintf("Too many requests, retry in %ds", secs),
		RetryAfter: secs,
	}
}
