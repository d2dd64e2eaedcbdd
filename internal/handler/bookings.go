package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// BookingHandler serves /v1/bookings.
type BookingHandler struct {
    Bookings *service.BookingService
    Log      *zap.Logger
}

func NewBookingHandler(bookings *service.BookingService, log *zap.Logger) *BookingHandler {
    return &BookingHandler{Bookings: bookings, Log: log}
}

// createBookingReq accepts dates as "2006-01-02" or RFC3339.
type createBookingReq struct {
    RoomID   string `json:"roomId"`
    CheckIn  string `json:"checkIn"`
    CheckOut string `json:"checkOut"`
    Guests   int    `json:"guests"`
}

func parseDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if t, err := time.Parse("2006-01-02", s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t.UTC(), true
    }
    return time.Time{}, false
}

func (h *BookingHandler) Create(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    in, ok := req.input()
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn and checkOut must be dates (YYYY-MM-DD)"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    b, err := h.Bookings.Create(ctx, who, in)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, b)
}

func (r createBookingReq) input() (model.CreateBookingInput, bool) {
    in, okIn := parseDate(r.CheckIn)
    out, okOut := parseDate(r.CheckOut)
    if !okIn || !okOut {
        return model.CreateBookingInput{}, false
    }
    return model.CreateBookingInput{RoomID: r.RoomID, CheckIn: in, CheckOut: out, Guests: r.Guests}, true
}

// List returns the caller's bookings, or every booking for admins.
func (h *BookingHandler) List(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    list, err := h.Bookings.List(ctx, who)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Get(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    b, err := h.Bookings.Get(ctx, who, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    b, err := h.Bookings.Cancel(ctx, who, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, b)
}
