package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

const testSecret = "handler-secret"

var errNotImplemented = errors.New("not implemented")

type mockUsers struct {
	findOneFunc    func(ctx context.Context, id string) (*model.User, error)
	findAllFunc    func(ctx context.Context, includeDeleted bool) ([]model.User, error)
	updateFunc     func(ctx context.Context, id string, in model.UpdateUserInput) (*model.User, error)
	softDeleteFunc func(ctx context.Context, id, deletedBy string) (*model.User, error)
	restoreFunc    func(ctx context.Context, id string) (*model.User, error)
	bulkFunc       func(ctx context.Context, ids []string, deletedBy string) model.BulkDeleteResult
	removeFunc     func(ctx context.Context, id string) error
}

func (m *mockUsers) FindOne(ctx context.Context, id string) (*model.User, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) FindAll(ctx context.Context) ([]model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, false)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) FindAllIncludingDeleted(ctx context.Context) ([]model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, true)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) Update(ctx context.Context, id string, in model.UpdateUserInput) (*model.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) SoftDelete(ctx context.Context, id, deletedBy string) (*model.User, error) {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id, deletedBy)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) Restore(ctx context.Context, id string) (*model.User, error) {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) BulkSoftDelete(ctx context.Context, ids []string, deletedBy string) model.BulkDeleteResult {
	if m.bulkFunc != nil {
		return m.bulkFunc(ctx, ids, deletedBy)
	}
	return model.BulkDeleteResult{Errors: []string{}}
}

func (m *mockUsers) Remove(ctx context.Context, id string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, id)
	}
	return errNotImplemented
}

type mockAuth struct {
	registerFunc func(ctx context.Context, in model.CreateUserInput) (*service.AuthResult, error)
	loginFunc    func(ctx context.Context, in model.LoginInput) (*service.AuthResult, error)
	refreshFunc  func(ctx context.Context, raw string) (*service.AuthResult, error)
	logoutFunc   func(ctx context.Context, raw, userID string) error
}

func (m *mockAuth) Register(ctx context.Context, in model.CreateUserInput) (*service.AuthResult, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, in)
	}
	return nil, errNotImplemented
}

func (m *mockAuth) Login(ctx context.Context, in model.LoginInput) (*service.AuthResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, in)
	}
	return nil, errNotImplemented
}

func (m *mockAuth) Refresh(ctx context.Context, raw string) (*service.AuthResult, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, raw)
	}
	return nil, errNotImplemented
}

func (m *mockAuth) Logout(ctx context.Context, raw, userID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, raw, userID)
	}
	return errNotImplemented
}

func bearerFor(t *testing.T, id string, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, id, id+"@example.com", string(role), 5)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok.Token
}

// do sends one request through a fresh Echo with h mounted at route.
func do(t *testing.T, method, route, path, auth, body string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Add(method, route, h, mw...)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authed() echo.MiddlewareFunc { return middleware.JWTAuth(testSecret) }

func nopLog() *zap.Logger { return zap.NewNop() }

func svcErr(kind error, msg string) error { return &service.Error{Kind: kind, Message: msg} }
