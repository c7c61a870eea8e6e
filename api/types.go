package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	contactHandler contactHandler
	projectHandler projectHandler
	healthHandler  healthHandler
}
