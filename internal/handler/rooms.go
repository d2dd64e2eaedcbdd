package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// RoomHandler serves /v1/rooms.
type RoomHandler struct {
    Rooms *service.RoomService
    Log   *zap.Logger
}

func NewRoomHandler(rooms *service.RoomService, log *zap.Logger) *RoomHandler {
    return &RoomHandler{Rooms: rooms, Log: log}
}

// List accepts an optional ?hotelId= filter.
func (h *RoomHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    rooms, err := h.Rooms.List(ctx, c.QueryParam("hotelId"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    rm, err := h.Rooms.Get(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, rm)
}

func (h *RoomHandler) Create(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.CreateRoomInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    rm, err := h.Rooms.Create(ctx, who, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, rm)
}

func (h *RoomHandler) Update(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.UpdateRoomInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    rm, err := h.Rooms.Update(ctx, who, c.Param("id"), req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, rm)
}

func (h *RoomHandler) Delete(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Rooms.Delete(ctx, who, c.Param("id")); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}
