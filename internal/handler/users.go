package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// UserLifecycle is the part of service.UserService the handlers use.
type UserLifecycle interface {
    FindOne(ctx context.Context, id string) (*model.User, error)
    FindAll(ctx context.Context) ([]model.User, error)
    FindAllIncludingDeleted(ctx context.Context) ([]model.User, error)
    Update(ctx context.Context, id string, in model.UpdateUserInput) (*model.User, error)
    SoftDelete(ctx context.Context, id, deletedBy string) (*model.User, error)
    Restore(ctx context.Context, id string) (*model.User, error)
    BulkSoftDelete(ctx context.Context, ids []string, deletedBy string) model.BulkDeleteResult
    Remove(ctx context.Context, id string) error
}

// UserHandler serves /v1/users.  Role checks run in middleware; the
// deletion policy needs the target account and runs here.
type UserHandler struct {
    Users UserLifecycle
    Log   *zap.Logger
}

func NewUserHandler(users UserLifecycle, log *zap.Logger) *UserHandler {
    return &UserHandler{Users: users, Log: log}
}

type bulkDeleteReq struct {
    IDs []string `json:"ids"`
}

// List returns live accounts.
func (h *UserHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    users, err := h.Users.FindAll(ctx)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, users)
}

// ListAll returns every account including soft-deleted ones.
func (h *UserHandler) ListAll(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    users, err := h.Users.FindAllIncludingDeleted(ctx)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.FindOne(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c echo.Context) error {
    var req model.UpdateUserInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.Update(ctx, c.Param("id"), req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, u)
}

// SoftDelete marks the account deleted after applying the deletion policy.
func (h *UserHandler) SoftDelete(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    target, err := h.Users.FindOne(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    if err := service.CanSoftDelete(who, target); err != nil {
        return respondError(c, h.Log, err)
    }
    u, err := h.Users.SoftDelete(ctx, target.ID, who.ID)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    h.Log.Info("user soft-deleted", zap.String("user_id", u.ID), zap.String("by", who.ID))
    return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Restore(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()
    u, err := h.Users.Restore(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, u)
}

// BulkDelete soft-deletes {ids} and reports per-id failures.
func (h *UserHandler) BulkDelete(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    var req bulkDeleteReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    if len(req.IDs) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids must be a non-empty list"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res := h.Users.BulkSoftDelete(ctx, req.IDs, who.ID)
    h.Log.Info("bulk soft delete", zap.Int("requested", len(req.IDs)), zap.Int("deleted", res.Deleted), zap.String("by", who.ID))
    return c.JSON(http.StatusOK, res)
}

// Purge physically removes an account.
func (h *UserHandler) Purge(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    id := c.Param("id")
    if id == who.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot delete your own account"})
    }
    ctx, cancel := reqCtx(c)
    defer cancel()
    if err := h.Users.Remove(ctx, id); err != nil {
        return respondError(c, h.Log, err)
    }
    h.Log.Warn("user purged", zap.String("user_id", id), zap.String("by", who.ID))
    return c.NoContent(http.StatusNoContent)
}
