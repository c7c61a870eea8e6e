package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-backend/errs"
)

// envelope is the uniform response shape: exactly one of data/error is set.
type envelope struct {
	Data      any        `json:"data,omitempty"`
	Error     *errorBody `json:"error,omitempty"`
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes a success envelope with the given status code.
func (r Responder) WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	r.write(w, statusCode, envelope{
		Data:      data,
		Status:    "success",
		Timestamp: time.Now().UTC(),
	})
}

// WriteError maps an error to the envelope. Unexpected errors are logged
// and surfaced as a generic 500 so internals never leak to the caller.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.write(w, http.StatusInternalServerError, envelope{
			Error: &errorBody{
				Code:    errs.CodeInternalServerError,
				Message: "An unexpected error occurred",
			},
			Status:    "error",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	message := apiErr.Error()
	if apiErr.StatusCode >= http.StatusInternalServerError && apiErr.Code == errs.CodeInternalServerError {
		// never expose internals on 500s
		message = "An unexpected error occurred"
	}

	if apiErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(apiErr.RetryAfter))
	}

	r.write(w, apiErr.StatusCode, envelope{
		Error: &errorBody{
			Code:    apiErr.Code,
			Message: message,
			Fields:  apiErr.Fields,
		},
		Status:    "error",
		Timestamp: time.Now().UTC(),
	})
}

func (r Responder) write(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}
