package api

import (
	"time"

	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/ratelimit"
	"github.com/folio-labs/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(
	db database.Database,
	issuer *auth.Issuer,
	limiter *ratelimit.Limiter,
	mailer services.Mailer,
	resetBaseURL string,
	startupTime time.Time,
) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(db.UserRepo(), db.PasswordResetRepo(), issuer, mailer, resetBaseURL),
		contactHandler: newContactHandler(db.ContactRepo(), limiter),
		projectHandler: newProjectHandler(db.ProjectRepo()),
		healthHandler:  newHealthHandler(db, startupTime),
	}
}
