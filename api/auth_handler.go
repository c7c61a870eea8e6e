package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/errs"
	"github.com/folio-labs/portfolio-backend/models"
	"github.com/folio-labs/portfolio-backend/services"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// invalidCredentials is shared by every login failure path so responses
// never reveal whether the email exists.
var invalidCredentials = "invalid email or password"

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	userRepo     *database.UserRepo
	resetRepo    *database.PasswordResetRepo
	issuer       *auth.Issuer
	mailer       services.Mailer
	resetBaseURL string
}

func newAuthHandler(userRepo *database.UserRepo, resetRepo *database.PasswordResetRepo, issuer *auth.Issuer, mailer services.Mailer, resetBaseURL string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		issuer:       issuer,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// login verifies admin credentials and issues an access/refresh token pair
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentials))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentials))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.logger.Warn().Str("email", user.Email).Msg("Failed login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentials))
			return
		}

		accessToken, err := h.issuer.IssueAccess(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue access token", err))
			return
		}
		refreshToken, err := h.issuer.IssueRefresh(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue refresh token", err))
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("Admin logged in")
		h.responder.WriteJSON(w, http.StatusOK, tokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "bearer",
			ExpiresIn:    int(h.issuer.AccessTTL().Seconds()),
		})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh exchanges a valid refresh token for a fresh access token
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		claims, err := h.issuer.ParseOfType(req.RefreshToken, auth.TokenTypeRefresh)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				h.responder.WriteError(w, errs.NewExpiredTokenError())
			} else {
				h.responder.WriteError(w, errs.NewInvalidTokenError())
			}
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		// the account must still exist
		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		accessToken, err := h.issuer.IssueAccess(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue access token", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, tokenResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
			ExpiresIn:   int(h.issuer.AccessTTL().Seconds()),
		})
	}
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// requestPasswordReset issues a single-use reset token and emails it to the
// account. The response is identical whether or not the email matches a
// user, to prevent account enumeration.
func (h authHandler) requestPasswordReset() http.HandlerFunc {
	accepted := map[string]string{
		"message": "If the email matches an account, a reset link has been sent",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordResetRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				h.logger.Error().Err(err).Msg("Failed to look up user for password reset")
			}
			h.responder.WriteJSON(w, http.StatusOK, accepted)
			return
		}

		raw, hash, err := auth.NewResetToken()
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to generate reset token", err))
			return
		}

		token := models.PasswordResetToken{
			UserID:    user.ID,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}
		if err := h.resetRepo.Add(&token); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "password reset token", err))
			return
		}

		subject, body := services.PasswordResetEmail(h.resetBaseURL, raw)
		if err := h.mailer.Send(subject, body, []string{user.Email}); err != nil {
			// the token row exists but the user can simply request again
			h.logger.Error().Err(err).Msg("Failed to send password reset email")
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("Password reset token issued")
		h.responder.WriteJSON(w, http.StatusOK, accepted)
	}
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// resetPassword consumes a reset token exactly once and sets a new
// password, which must differ from the old one.
func (h authHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var c fieldCollector
		if req.Token == "" {
			c.add("token", "is required")
		}
		c.requireLength("new_password", req.NewPassword, 8, 128)
		if err := c.err(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.resetRepo.FindByTokenHash(auth.HashResetToken(req.Token))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid or expired reset token"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "password reset token", err))
			return
		}

		if !token.Usable(time.Now()) {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid or expired reset token"))
			return
		}

		user, err := h.userRepo.FindByID(token.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid or expired reset token"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		if auth.CheckPassword(user.PasswordHash, req.NewPassword) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("new_password", "must differ from the current password"))
			return
		}

		// marking used before writing the new hash keeps consumption
		// exactly-once even under concurrent confirms
		if err := h.resetRepo.Consume(token.ID, time.Now()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid or expired reset token"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("consume", "password reset token", err))
			return
		}

		newHash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		if err := h.userRepo.UpdatePasswordHash(user.ID, newHash); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "user", err))
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("Password reset completed")
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "password has been reset",
		})
	}
}
