package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// RegisterUsers registers the account lifecycle endpoints.  Static segments
// (admin/all, bulk/delete) take precedence over :id in Echo's router.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1/users", middleware.JWTAuth(jwtSecret))
	admin := middleware.AdminOnly()
	self := middleware.SelfOrAdmin("id")

	g.GET("", u.List)
	g.GET("/admin/all", u.ListAll, admin)
	g.DELETE("/bulk/delete", u.BulkDelete, admin)

	g.GET("/:id", u.Get, self)
	g.PATCH("/:id", u.Update, self)
	g.DELETE("/:id", u.SoftDelete, admin)
	g.POST("/:id/restore", u.Restore, admin)
	g.DELETE("/:id/purge", u.Purge, admin)
}
