package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/ziwei-api/internal/api"
	apiMiddleware "github.com/phrazzld/ziwei-api/internal/api/middleware"
	"github.com/phrazzld/ziwei-api/internal/api/shared"
)

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(
		app.userService,
		app.jwtService,
		app.passwordVerifier,
		&app.config.Auth,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.logger)
	chartHandler := api.NewChartHandler(app.chartService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.chartService, app.logger)
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Post("/charts", chartHandler.ComputeChart)
		r.Post("/charts/relations", chartHandler.Relations)
		r.Post("/charts/patterns", chartHandler.Patterns)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/profiles", profileHandler.CreateProfile)
			r.Get("/profiles", profileHandler.ListProfiles)
			r.Get("/profiles/charts", profileHandler.ListCharts)
			r.Get("/profiles/{id}", profileHandler.GetProfile)
			r.Put("/profiles/{id}", profileHandler.UpdateProfile)
			r.Delete("/profiles/{id}", profileHandler.DeleteProfile)
			r.Get("/profiles/{id}/chart", profileHandler.GetChart)
			r.Get("/profiles/{id}/relations/{palace}", profileHandler.GetRelations)
			r.Get("/profiles/{id}/patterns", profileHandler.GetPatterns)

			r.Post("/profiles/{id}/readings", readingHandler.RequestReading)
			r.Get("/readings/{id}", readingHandler.GetReading)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
