package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// PaymentHandler serves /v1/payments.
type PaymentHandler struct {
    Payments *service.PaymentService
    Log      *zap.Logger
}

func NewPaymentHandler(payments *service.PaymentService, log *zap.Logger) *PaymentHandler {
    return &PaymentHandler{Payments: payments, Log: log}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.CreatePaymentIntentInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    intent, err := h.Payments.CreateIntent(ctx, who, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, intent)
}

func (h *PaymentHandler) Confirm(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req model.ConfirmPaymentInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    res, err := h.Payments.Confirm(ctx, who, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    h.Log.Info("payment confirmed", zap.String("payment_id", res.PaymentID), zap.String("booking_id", res.Booking.ID))
    return c.JSON(http.StatusOK, res)
}
