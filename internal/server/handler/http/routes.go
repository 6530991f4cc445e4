package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/califeryan/goutte-server/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// goal-tracking API.
//
// Routes:
//
//	POST   /api/players               → playerHandler.Create        (public)
//	GET    /api/players               → playerHandler.List          (public)
//	DELETE /api/players               → playerHandler.DeleteAll     (admin token)
//	GET    /api/players/{id}          → playerHandler.GetByID       (public)
//	GET    /api/players/{id}/name     → playerHandler.GetName       (public)
//	GET    /api/players/{id}/goals    → goalHandler.ListByPlayer    (public)
//	PATCH  /api/players/{id}          → playerHandler.Update        (session, owner)
//	DELETE /api/players/{id}          → playerHandler.Delete        (session, owner or admin)
//	POST   /api/players/{id}/email    → playerHandler.ResendEmail   (session, admin)
//	POST   /api/players/{id}/warning  → playerHandler.SendWarning   (session, admin)
//	GET    /api/goals                 → goalHandler.List            (public)
//	GET    /api/email/available       → playerHandler.EmailAvailable (public)
//	POST   /api/login                 → sessionHandler.Login        (public)
//	POST   /api/admin/login           → sessionHandler.AdminLogin   (public)
//	GET    /api/me                    → sessionHandler.Me           (session)
//	GET    /api/admin/me              → sessionHandler.AdminMe      (session, admin)
//	POST   /api/admins                → adminHandler.Create         (admin token)
//	GET    /api/admins                → adminHandler.GetByPseudonyme (session, admin)
//	GET    /api/admins/{id}           → adminHandler.GetByID        (session, admin)
//
// Middleware chain: JSON content-type enforcement on mutating routes,
// request logging everywhere, session authentication on the protected group.
func NewRouter(
	playerHandler *PlayerHandler,
	goalHandler *GoalHandler,
	adminHandler *AdminHandler,
	sessionHandler *SessionHandler,
	sessions middleware.SessionValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Group(func(r chi.Router) {
			r.With(chiMiddleware.AllowContentType("application/json")).
				Post("/players", playerHandler.Create)
			r.Get("/players", playerHandler.List)
			r.Get("/players/{id}", playerHandler.GetByID)
			r.Get("/players/{id}/name", playerHandler.GetName)
			r.Get("/players/{id}/goals", goalHandler.ListByPlayer)
			r.Get("/goals", goalHandler.List)
			r.Get("/email/available", playerHandler.EmailAvailable)
			r.Post("/login", sessionHandler.Login)
			r.Post("/admin/login", sessionHandler.AdminLogin)

			// Gated by the shared admin secret rather than a session
			r.Delete("/players", playerHandler.DeleteAll)
			r.Post("/admins", adminHandler.Create)
		})

		// Protected group: requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions))

			r.Patch("/players/{id}", playerHandler.Update)
			r.Delete("/players/{id}", playerHandler.Delete)
			r.Get("/me", sessionHandler.Me)

			// Administrator-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/players/{id}/email", playerHandler.ResendEmail)
				r.Post("/players/{id}/warning", playerHandler.SendWarning)
				r.Get("/admin/me", sessionHandler.AdminMe)
				r.Get("/admins", adminHandler.GetByPseudonyme)
				r.Get("/admins/{id}", adminHandler.GetByID)
			})
		})
	})

	return r
}
