package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// HotelHandler serves /v1/hotels.
type HotelHandler struct {
    Hotels *service.HotelService
    Log    *zap.Logger
}

func NewHotelHandler(hotels *service.HotelService, log *zap.Logger) *HotelHandler {
    return &HotelHandler{Hotels: hotels, Log: log}
}

func (h *HotelHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    hotels, err := h.Hotels.List(ctx)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, hotels)
}

func (h *HotelHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    hotel, err := h.Hotels.Get(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, hotel)
}

func (h *HotelHandler) Create(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.CreateHotelInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    hotel, err := h.Hotels.Create(ctx, who, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, hotel)
}

func (h *HotelHandler) Update(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.UpdateHotelInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    hotel, err := h.Hotels.Update(ctx, who, c.Param("id"), req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, hotel)
}

func (h *HotelHandler) Delete(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Hotels.Delete(ctx, who, c.Param("id")); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}
