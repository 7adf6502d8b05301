package rest

import (
	"log/slog"
	"net/http"

	"github.com/adminboard/internal/assets"
	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/feature"
	"github.com/adminboard/internal/permissions"
	"github.com/adminboard/internal/seeder"
	"github.com/adminboard/internal/tables"
	"github.com/adminboard/internal/transport/middleware"
	"github.com/adminboard/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Features    *feature.Handler
	Permissions *permissions.Handler
	Tables      *tables.Handler
	Seeders     *seeder.Handler
	Assets      *assets.Handler
}

// RegisterAllRoutes wires the middleware chain and every route group.
// Ordering matters: enrichment (InjectUser) runs globally so any handler can
// read the caller's identity, the hard gates are mounted per group.
func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, guard *middleware.LoginGuard, perms *middleware.PermissionMiddleware, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(h.Auth.BaseHandler, db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(guard.InjectUser)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.Refresh)

			sr.Group(func(gr chi.Router) {
				gr.Use(guard.RequireLogin)
				gr.Delete("/", h.Auth.Logout)
			})
		})

		r.Get("/features", h.Features.GetFeatures)
		r.Get("/assets/*", h.Assets.GetAsset)

		r.Group(func(pr chi.Router) {
			pr.Use(guard.RequireLogin)
			pr.Use(perms.InjectPermissions)

			pr.Get("/permissions", h.Permissions.GetPermissions)
		})

		// Introspection and fixtures are operator tooling, super-admin only.
		r.Group(func(sr chi.Router) {
			sr.Use(guard.RequireLogin)
			sr.Use(guard.RequireSuperAdmin)

			sr.Route("/tables", func(tr chi.Router) {
				tr.Get("/{tableName}", h.Tables.GetTable)
				tr.Get("/", h.Tables.Index)
				tr.Get("/*", h.Tables.Index)
			})

			sr.Route("/seeders", func(sdr chi.Router) {
				sdr.Get("/users/{amount}", h.Seeders.SeedUsers)
				sdr.Get("/bootstrap/{amount}", h.Seeders.Bootstrap)
				sdr.Get("/", h.Seeders.Index)
				sdr.Get("/*", h.Seeders.Index)
			})
		})
	})
}
