package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/auth-gateway/app"
	"github.com/upb/auth-gateway/policy"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/health", deps.HealthHandler.HandleHealth)
	r.Get("/health/ready", deps.HealthHandler.HandleReadiness)

	// Public auth endpoints
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", deps.AuthHandler.HandleLogin)
		r.Post("/register", deps.AuthHandler.HandleRegister)
		r.Post("/logout", deps.AuthHandler.HandleLogout)
	})

	// Authenticated user endpoints. Profile is open to any authenticated
	// caller regardless of role; the listing is admin-only.
	r.Route("/api/users", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)
		r.Get("/profile", deps.UserHandler.HandleProfile)
		r.Put("/profile", deps.UserHandler.HandleUpdateProfile)
		r.With(deps.PolicyMiddleware.Require(policy.AdminOnly)).
			Get("/", deps.UserHandler.HandleListUsers)
	})

	// Role management (admins only)
	r.Route("/api/roles", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)
		r.Use(deps.PolicyMiddleware.Require(policy.AdminOnly))
		r.Get("/", deps.RoleHandler.HandleListRoles)
		r.Post("/", deps.RoleHandler.HandleCreateRole)
		r.Post("/assign", deps.RoleHandler.HandleAssignRole)
		r.Post("/remove", deps.RoleHandler.HandleRemoveRole)
		r.Get("/user", deps.RoleHandler.HandleUserRoles)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
