package main

import (
	"net/http"

	"yamdb/proj/internal/services/permissions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.Server.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if app.metrics != nil {
		router.Use(app.metrics.Middleware)
		router.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(app.Authenticate)
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/token", app.token)
		})
		r.Route("/users", func(r chi.Router) {
			r.With(app.requireAuthenticatedUser).Get("/me", app.getMe)
			r.With(app.requireAuthenticatedUser).Patch("/me", app.updateMe)
			r.Group(func(r chi.Router) {
				r.Use(app.requirePermission(permissions.KindUser))
				r.Get("/", app.listUsers)
				r.Post("/", app.createUser)
				r.Get("/{username}", app.getUser)
				r.Patch("/{username}", app.updateUser)
				r.Delete("/{username}", app.deleteUser)
			})
		})
		r.Route("/genres", app.termRoutes(app.services.Genres, "genre", "genres"))
		r.Route("/categories", app.termRoutes(app.services.Categories, "category", "categories"))
		r.Route("/titles", func(r chi.Router) {
			r.Get("/", app.listTitles)
			r.Post("/", app.createTitle)
			r.Route("/{titleID}", func(r chi.Router) {
				r.Get("/", app.getTitle)
				r.Patch("/", app.updateTitle)
				r.Delete("/", app.deleteTitle)
				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.listReviews)
					r.Post("/", app.createReview)
					r.Route("/{reviewID}", func(r chi.Router) {
						r.Get("/", app.getReview)
						r.Patch("/", app.updateReview)
						r.Delete("/", app.deleteReview)
						r.Route("/comments", func(r chi.Router) {
							r.Get("/", app.listComments)
							r.Post("/", app.createComment)
							r.Get("/{commentID}", app.getComment)
							r.Patch("/{commentID}", app.updateComment)
							r.Delete("/{commentID}", app.deleteComment)
						})
					})
				})
			})
		})
	})
	return router
}
