package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError translates a GORM/driver error into an ApiErr with the
// status code the caller should surface. Connection-level failures map to
// service_unavailable rather than a generic 500 so the frontend can apply
// its retry policy.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		switch {
		case errors.Is(cause, gorm.ErrRecordNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				Code:       CodeNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		case errors.Is(cause, gorm.ErrDuplicatedKey):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				Code:       CodeConflict,
				err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
				Details:    details,
				Cause:      cause,
			}
		}

		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "UNIQUE constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				Code:       CodeConflict,
				err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection refused"),
			strings.Contains(errStr, "connection reset"),
			strings.Contains(errStr, "no such host"),
			strings.Contains(errStr, "bad connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				Code:       CodeServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to reach database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
