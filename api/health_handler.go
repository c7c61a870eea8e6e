package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/folio-labs/portfolio-backend/database"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// health reports database reachability. The check is a single ping with a
// short deadline so it can never become a load source itself.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:        "healthy",
			Timestamp:     time.Now().UTC(),
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		}

		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Health check failed")
			resp.Status = "unhealthy"
			h.responder.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, resp)
	}
}
