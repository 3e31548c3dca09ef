// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lfmelo/stockboard/internal/handler"
	"github.com/lfmelo/stockboard/internal/middleware"
)

// RegisterRoutes registers routes that do not depend on any handler state.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login under /auth. Neither
// requires an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterUsers registers the user routes. The public listing stays open;
// everything under /users/me runs behind the bearer gate so handlers can
// read the caller's identity from the request context.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	e.GET("/users", u.List)

	me := e.Group("/users/me", middleware.Authenticate(jwtSecret))
	me.GET("", u.Profile)
	me.PUT("", u.UpdateProfile)
	me.PUT("/password", u.UpdatePassword)
	me.PUT("/preferences", u.UpdatePreferences)
}

// RegisterComments registers the comment thread routes. Reading is public;
// posting needs an authenticated author.
func RegisterComments(e *echo.Echo, ch *handler.CommentHandler, jwtSecret string) {
	e.GET("/comments/get/:companyId", ch.ListByCompany)
	e.POST("/comments/post/:companyId", ch.Post, middleware.Authenticate(jwtSecret))
}

// RegisterQuotes registers the market-data proxy under /yahoo, wrapped in
// the Redis response cache when one is configured.
func RegisterQuotes(e *echo.Echo, qh *handler.QuoteHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/yahoo")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/:symbol", qh.Company)
	g.GET("/:symbol/history", qh.History)
	g.GET("/:symbol/quote", qh.Quote)
}
