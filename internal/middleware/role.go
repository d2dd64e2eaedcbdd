package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// Guard adapts a caller predicate from the service package into a
// middleware.  It must run after JWTAuth; an unauthenticated request is
// rejected with 401 and a denied one with 403.
func Guard(check func(c echo.Context, caller service.Caller) error) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            caller, ok := CallerFrom(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            if err := check(c, caller); err != nil {
                return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
            }
            return next(c)
        }
    }
}

// AdminOnly allows admins only.
func AdminOnly() echo.MiddlewareFunc {
    return Guard(func(_ echo.Context, caller service.Caller) error { return service.AdminOnly(caller) })
}

// SelfOrAdmin allows admins and the account addressed by the path
// parameter param.
func SelfOrAdmin(param string) echo.MiddlewareFunc {
    return Guard(func(c echo.Context, caller service.Caller) error {
        return service.SelfOrAdmin(caller, c.Param(param))
    })
}

// RequireRole enforces that the caller holds one of roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return Guard(func(_ echo.Context, caller service.Caller) error {
        if !allowed[caller.Role] {
            return &service.Error{Kind: service.ErrAuthorization, Message: "forbidden"}
        }
        return nil
    })
}
