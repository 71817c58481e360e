package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes registers the API endpoints on router.
func SetupRoutes(router *mux.Router, handlers *Handlers) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	api.HandleFunc("/graph", handlers.GraphInfo).Methods("GET")
	api.HandleFunc("/kinds", handlers.ListKinds).Methods("GET")
	api.HandleFunc("/keys/{key:[0-9]+}", handlers.DecodeKey).Methods("GET")

	edges := api.PathPrefix("/edges").Subrouter()
	edges.HandleFunc("/{src:[0-9]+}/{dst:[0-9]+}/graphlets", handlers.EdgeGraphlets).Methods("GET")
}

// NewRouter builds the router with the middleware stack applied.
func NewRouter(handlers *Handlers) *mux.Router {
	router := mux.NewRouter()
	SetupRoutes(router, handlers)

	router.Use(LoggingMiddleware)
	router.Use(RecoveryMiddleware)
	return router
}
