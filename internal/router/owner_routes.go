package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
)

// RegisterOwner registers property management endpoints under /v1.  All
// routes require a valid JWT and the hotel_owner or admin role; ownership of
// the individual hotel is checked by the services.
func RegisterOwner(e *echo.Echo, hotels *handler.HotelHandler, rooms *handler.RoomHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleHotelOwner, model.RoleAdmin),
	)

	// ---- Hotels ----
	g.POST("/hotels", hotels.Create)
	g.PUT("/hotels/:id", hotels.Update)
	g.PATCH("/hotels/:id", hotels.Update)
	g.DELETE("/hotels/:id", hotels.Delete)

	// ---- Rooms ----
	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.PATCH("/rooms/:id", rooms.Update)
	g.DELETE("/rooms/:id", rooms.Delete)
}
