package api

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/errs"
)

type authMiddleware struct {
	issuer    *auth.Issuer
	responder Responder
}

func newAuthMiddleware(issuer *auth.Issuer) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		issuer:    issuer,
		responder: NewResponder(logger),
	}
}

// authenticate verifies the bearer access token on every protected request.
// Refresh tokens are rejected here; they are only good for the refresh
// endpoint.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		claims, err := m.issuer.ParseOfType(tokenStr, auth.TokenTypeAccess)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				m.responder.WriteError(w, errs.NewExpiredTokenError())
			} else {
				m.responder.WriteError(w, errs.NewInvalidTokenError())
			}
			return
		}

		ctx := r.Context()
		updatedCtx := ctxWithUserID(ctx, claims.UserID)
		updatedReq := r.WithContext(updatedCtx)
		next.ServeHTTP(w, updatedReq)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}

// clientIP extracts the originating client address, preferring proxy
// headers set by the hosting platform over the raw socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// first address in the chain is the client
		if idx := strings.IndexAny(xff, ", "); idx > 0 {
			return xff[:idx]
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
