package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterRoutes registers the unauthenticated operational endpoints and the
// global middleware chain.  Health reports database reachability when db is
// set.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, log *zap.Logger) {
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(log))

	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the session endpoints.  limiter wraps every
// /v1/auth route; logout accepts an optional bearer token so a caller can
// revoke all of their sessions at once.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.OptionalJWT(jwtSecret))

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers unauthenticated browse and search endpoints.
func RegisterPublic(e *echo.Echo, hotels *handler.HotelHandler, rooms *handler.RoomHandler, search *handler.SearchHandler) {
	e.GET("/v1/hotels", hotels.List)
	e.GET("/v1/hotels/:id", hotels.Get)
	e.GET("/v1/rooms", rooms.List)
	e.GET("/v1/rooms/:id", rooms.Get)
	e.GET("/v1/search/hotels", search.Hotels)
}
