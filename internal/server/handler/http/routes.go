// Package http provides HTTP routing and middleware configuration
// for the account service.
package http

import (
	"net/http"

	"github.com/echoplay/echoplay/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the account API. It applies JSON content-type enforcement,
// request logging, and bearer-token authentication, and mounts the
// auth and profile endpoints under /api.
//
// Parameters:
//
//	authHandler    - handler for sign-up, sign-in, and sign-out endpoints
//	profileHandler - handler for profile-document endpoints
//	sessions       - resolver mapping session tokens to user ids
//	logger         - structured logger for request logging middleware
//
// Routes:
//
//	POST   /api/signup       → authHandler.SignUp
//	POST   /api/signin       → authHandler.SignIn
//	POST   /api/signout      → authHandler.SignOut      (token required)
//	GET    /api/users/{uid}  → profileHandler.Get       (token required)
//	PATCH  /api/users/{uid}  → profileHandler.Update    (token required)
//	DELETE /api/users/{uid}  → profileHandler.Delete    (token required)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. TokenAuth(sessions)                  — enforces bearer-token auth
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce bearer-token authentication
	r.Use(middleware.TokenAuth(sessions))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)

		// Protected group: requires a valid session token
		r.Group(func(r chi.Router) {
			r.Post("/signout", authHandler.SignOut)
			r.Route("/users/{uid}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Patch("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
			})
		})
	})

	return r
}
