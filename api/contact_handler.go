package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/errs"
	"github.com/folio-labs/portfolio-backend/models"
	"github.com/folio-labs/portfolio-backend/ratelimit"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
	limiter     *ratelimit.Limiter
}

func newContactHandler(contactRepo *database.ContactRepo, limiter *ratelimit.Limiter) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		limiter:     limiter,
	}
}

type contactRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Organization string `json:"organization"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

func (req contactRequest) validate() error {
	var c fieldCollector
	c.requireLength("full_name", req.FullName, 2, 100)
	if !validEmail(sanitizeEmail(req.Email)) {
		c.add("email", "must be a valid email address")
	}
	c.requireLength("subject", req.Subject, 5, 255)
	c.requireLength("message", req.Message, 10, 5000)
	return c.err()
}

type contactCreatedResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// submitContact accepts a public contact-form submission. Validation runs
// before the rate limiter so malformed requests never consume quota; only
// accepted submissions count against the rolling window.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ip := clientIP(r)
		result := h.limiter.Allow(ip)
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))
		if !result.Allowed {
			h.logger.Warn().Str("ip", ip).Msg("Contact submission rate limited")
			h.responder.WriteError(w, errs.NewRateLimitError(result.RetryAfter))
			return
		}

		contact := models.Contact{
			FullName:  sanitizeText(req.FullName),
			Email:     sanitizeEmail(req.Email),
			Subject:   sanitizeText(req.Subject),
			Message:   sanitizeText(req.Message),
			IPAddress: ip,
			Status:    models.ContactStatusNew,
		}
		if phone := sanitizePhone(req.PhoneNumber); phone != "" {
			contact.PhoneNumber = &phone
		}
		if org := sanitizeText(req.Organization); org != "" {
			contact.Organization = &org
		}

		if err := h.contactRepo.Add(&contact); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "contact", err))
			return
		}

		h.logger.Info().Str("contactID", contact.ID.String()).Msg("Contact submission stored")
		h.responder.WriteJSON(w, http.StatusCreated, contactCreatedResponse{
			ID:        contact.ID,
			CreatedAt: contact.CreatedAt,
		})
	}
}

// listContacts returns all submissions for the admin dashboard, optionally
// filtered by ?status=
func (h contactHandler) listContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		var contacts []*models.Contact
		var err error
		if status != "" {
			if !models.ValidContactStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of new, read, responded"))
				return
			}
			contacts, err = h.contactRepo.FindByStatus(status)
		} else {
			contacts, err = h.contactRepo.FindAll()
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "contacts", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contacts)
	}
}

// getContact returns a single submission by ID
func (h contactHandler) getContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uuid.Parse(chi.URLParam(r, "contactID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
			return
		}

		contact, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("contact"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "contact", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contact)
	}
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

// updateContactStatus advances a submission through new -> read ->
// responded. Only the status field is admin-mutable.
func (h contactHandler) updateContactStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uuid.Parse(chi.URLParam(r, "contactID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
			return
		}

		var req contactStatusRequest
		if err := decodeJSONBody(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !models.ValidContactStatus(req.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of new, read, responded"))
			return
		}

		if err := h.contactRepo.UpdateStatus(contactID, req.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("contact"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("update", "contact", err))
			return
		}

		contact, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find updated", "contact", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contact)
	}
}
