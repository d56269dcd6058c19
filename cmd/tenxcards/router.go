package main

import (
	"net/http"

	"github.com/KKuznik/10x-cards/internal/api"
	apimiddleware "github.com/KKuznik/10x-cards/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// setupRouter builds the HTTP handler with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apimiddleware.Trace(app.logger))
	r.Use(apimiddleware.Recover(app.logger))
	// rs/cors treats an empty origin list as "allow all", so CORS is only
	// enabled when origins are configured.
	if origins := app.config.Server.CORSAllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", apimiddleware.TraceHeader},
			ExposedHeaders:   []string{apimiddleware.TraceHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.logger)
	authHandler := api.NewAuthHandler(app.users, app.logger)
	generationHandler := api.NewGenerationHandler(app.generations, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.flashcards, app.logger)
	modelHandler := api.NewModelHandler(app.models)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/models", modelHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Delete("/auth/account", authHandler.DeleteAccount)

			r.Post("/generations", generationHandler.Create)
			r.Get("/generations", generationHandler.List)
			r.Get("/generations/{id}", generationHandler.Get)

			r.Post("/flashcards", flashcardHandler.Create)
			r.Post("/flashcards/batch", flashcardHandler.AcceptBatch)
			r.Get("/flashcards", flashcardHandler.List)
			r.Get("/flashcards/{id}", flashcardHandler.Get)
			r.Put("/flashcards/{id}", flashcardHandler.Update)
			r.Delete("/flashcards/{id}", flashcardHandler.Delete)
		})
	})

	r.Get("/health", api.Health)

	return r
}
