package middleware

// identity.go stores and retrieves the authenticated caller on the Echo
// context.  JWTAuth writes it; guards, handlers and the rate limiter read it.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/service"
)

const callerKey = "caller"

func setCaller(c echo.Context, caller service.Caller) { c.Set(callerKey, caller) }

// CallerFrom returns the caller stored by JWTAuth or OptionalJWT.
func CallerFrom(c echo.Context) (service.Caller, bool) {
    caller, ok := c.Get(callerKey).(service.Caller)
    return caller, ok && caller.ID != ""
}

// userID returns the caller id, or "anon" when the request is unauthenticated.
func userID(c echo.Context) string {
    if caller, ok := CallerFrom(c); ok {
        return caller.ID
    }
    return "anon"
}
