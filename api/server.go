package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/config"
	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/ratelimit"
	"github.com/folio-labs/portfolio-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	jwtSecret := config.GetString(c, "JWT_SECRET", "")
	if jwtSecret == "" {
		return Server{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	issuer := auth.NewIssuer(
		jwtSecret,
		config.GetDuration(c, "ACCESS_TOKEN_TTL", auth.DefaultAccessTTL),
		config.GetDuration(c, "REFRESH_TOKEN_TTL", auth.DefaultRefreshTTL),
	)

	limiter := ratelimit.New(
		config.GetInt(c, "CONTACT_RATE_LIMIT", 5),
		config.GetDuration(c, "CONTACT_RATE_WINDOW", time.Hour),
	)

	router := newRouter(db,
		withConfig(c),
		withStartupTime(startupTime),
		withIssuer(issuer),
		withLimiter(limiter),
		withMailer(services.ResendMailer{}),
	)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	issuer      *auth.Issuer
	limiter     *ratelimit.Limiter
	mailer      services.Mailer
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withIssuer(issuer *auth.Issuer) func(*router) {
	return func(r *router) {
		r.issuer = issuer
	}
}

func withLimiter(limiter *ratelimit.Limiter) func(*router) {
	return func(r *router) {
		r.limiter = limiter
	}
}

func withMailer(mailer services.Mailer) func(*router) {
	return func(r *router) {
		r.mailer = mailer
	}
}

func newRouter(db database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	// Cross-origin requests are restricted to the known frontend origins
	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	resetBaseURL := config.GetString(router.config, "PASSWORD_RESET_URL", "http://localhost:3000/reset-password")

	handlers := initializeHandlers(db, router.issuer, router.limiter, router.mailer, resetBaseURL, router.startupTime)

	authMiddleware := newAuthMiddleware(router.issuer)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
