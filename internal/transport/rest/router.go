package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/trip-management/internal/document"
	"github.com/frahmantamala/trip-management/internal/transport/middleware"
	"github.com/frahmantamala/trip-management/internal/trip"
	"github.com/frahmantamala/trip-management/internal/workflow"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, tripHandler *trip.Handler, workflowHandler *workflow.Handler, documentHandler *document.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Recovery)

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if tripHandler != nil {
			r.Get("/deputy-governors", tripHandler.ListDeputyGovernors)
		}

		r.Route("/trips", func(tr chi.Router) {
			if tripHandler != nil {
				tr.Post("/", tripHandler.CreateTrip) // POST /trips
				tr.Get("/{id}", tripHandler.GetTrip) // GET /trips/:id
			}

			if workflowHandler != nil {
				tr.Get("/", workflowHandler.ListTrips) // GET /trips?queue=&status=

				tr.Route("/{id}/queue/{department}", func(qr chi.Router) {
					qr.Get("/", workflowHandler.QueueView)
					qr.Post("/", workflowHandler.QueueAction)
				})
			}

			if documentHandler != nil {
				tr.Get("/{id}/document/{type}", documentHandler.Download)
			}
		})
	})
}
