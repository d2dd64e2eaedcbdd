package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
    "github.com/iliyamo/hotel-booking/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the caller (subject, email and role claims) in the request context.
// The secret must match the one used when issuing tokens.  Handlers read
// the caller with CallerFrom.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearer(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            caller, err := parseCaller(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            setCaller(c, caller)
            return next(c)
        }
    }
}

// OptionalJWT stores the caller when a valid bearer token is present and
// lets the request through either way.
func OptionalJWT(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if raw, ok := bearer(c); ok {
                if caller, err := parseCaller(secret, raw); err == nil {
                    setCaller(c, caller)
                }
            }
            return next(c)
        }
    }
}

func bearer(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    return raw, raw != ""
}

func parseCaller(secret, raw string) (service.Caller, error) {
    claims, err := utils.ParseAccessToken(secret, raw)
    if err != nil {
        return service.Caller{}, err
    }
    return service.Caller{ID: claims.Subject, Email: claims.Email, Role: model.Role(claims.Role)}, nil
}
