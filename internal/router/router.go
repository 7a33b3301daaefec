package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/service-connect/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/service-connect/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/service-connect/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication and
// carry no dependencies: the service banner and the health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Index)
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /auth, while
// /auth/me requires a valid bearer token.  Logout is registered without the
// JWT middleware because a refresh token in the body is enough to end a
// single session; the handler falls back to the bearer identity only when
// one is present.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/auth")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterProviders registers the provider browse and rating routes.  The
// browse endpoints are public and wrapped in the response cache; rating
// submission requires a valid bearer token with a known role.  extra
// middleware (the cache) applies only to the two GET routes so that
// authenticated writes are never served from cache.
func RegisterProviders(e *echo.Echo, p *handler.ProviderHandler, r *handler.RatingHandler,
	jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/providers", p.List, cache)
	e.GET("/providers/:id", p.Get, cache)

	rate := e.Group("/providers")
	rate.Use(middleware.JWTAuth(jwtSecret))
	rate.Use(middleware.RequireRole(model.RoleClient, model.RoleProvider))
	rate.POST("/:id/rating", r.Submit)
}
