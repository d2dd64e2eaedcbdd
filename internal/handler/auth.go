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

// Authenticator is the part of service.AuthService the handlers use.
type Authenticator interface {
    Register(ctx context.Context, in model.CreateUserInput) (*service.AuthResult, error)
    Login(ctx context.Context, in model.LoginInput) (*service.AuthResult, error)
    Refresh(ctx context.Context, raw string) (*service.AuthResult, error)
    Logout(ctx context.Context, raw, userID string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Auth  Authenticator
    Users UserLifecycle
    Log   *zap.Logger
}

func NewAuthHandler(auth Authenticator, users UserLifecycle, log *zap.Logger) *AuthHandler {
    return &AuthHandler{Auth: auth, Users: users, Log: log}
}

type refreshReq struct {
    RefreshToken string `json:"refreshToken"`
}

// Register creates a guest account and returns tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req model.CreateUserInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Auth.Register(ctx, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    h.Log.Info("user registered", zap.String("user_id", res.User.ID))
    return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
    var req model.LoginInput
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Auth.Login(ctx, req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Refresh rotates the refresh token and returns a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    res, err := h.Auth.Refresh(ctx, req.RefreshToken)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Logout revokes the refresh token in the body.  With no body but a valid
// bearer token, every session of the caller is revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }
    uid := ""
    if who, ok := middleware.CallerFrom(c); ok {
        uid = who.ID
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Auth.Logout(ctx, req.RefreshToken, uid); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
    who, ok := middleware.CallerFrom(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    u, err := h.Users.FindOne(ctx, who.ID)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, u)
}
