package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/service"
)

// requestTimeout bounds the store round trips of one request.
const requestTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// statusFor maps a service error kind to an HTTP status.
func statusFor(err error) int {
    switch {
    case errors.Is(err, service.ErrValidation):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrConflict):
        return http.StatusConflict
    case errors.Is(err, service.ErrAuthentication):
        return http.StatusUnauthorized
    case errors.Is(err, service.ErrAuthorization):
        return http.StatusForbidden
    case errors.Is(err, service.ErrNotFound):
        return http.StatusNotFound
    }
    return http.StatusInternalServerError
}

// respondError writes {"error": message}.  Unclassified errors are logged
// and hidden behind a generic message.
func respondError(c echo.Context, log *zap.Logger, err error) error {
    status := statusFor(err)
    if status == http.StatusInternalServerError {
        log.Error("request failed",
            zap.String("method", c.Request().Method),
            zap.String("route", c.Path()),
            zap.Error(err))
        return c.JSON(status, echo.Map{"error": "internal server error"})
    }
    return c.JSON(status, echo.Map{"error": err.Error()})
}

func badBody(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}

// unauthorized is returned by handlers that need a caller when none is on
// the context.  Such routes are mounted behind JWTAuth, so this only
// happens on a wiring mistake.
func unauthorized(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}
