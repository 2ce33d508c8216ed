package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(apiHandler *APIHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling
	r.Use(CORS(apiHandler.allowedOrigins))

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", apiHandler.HealthHandler)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/benefits", apiHandler.ListBenefitsHandler)
			r.Get("/benefits/{benefitID}", apiHandler.GetBenefitHandler)
			r.Get("/rights", apiHandler.RightsHandler)
			r.Get("/citizenship", apiHandler.CitizenshipHandler)
			r.Get("/suggestions", apiHandler.SuggestionsHandler)
		})

		r.Post("/sessions", apiHandler.CreateSessionHandler)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(apiHandler.SessionMiddleware)

			r.Get("/", apiHandler.GetSessionHandler)
			r.Delete("/", apiHandler.DeleteSessionHandler)
			r.Get("/transcript", apiHandler.TranscriptHandler)
			r.Post("/messages", apiHandler.PostMessageHandler)
			r.Post("/actions", apiHandler.QuickActionHandler)
			r.Get("/applications", apiHandler.ListApplicationsHandler)
			r.Post("/applications", apiHandler.StartApplicationHandler)
			r.Post("/applications/{benefitID}/documents", apiHandler.SubmitDocumentsHandler)
			r.Get("/events", apiHandler.EventsHandler)
		})
	})

	return r
}
