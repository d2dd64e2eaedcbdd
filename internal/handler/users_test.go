package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/service"
)

func TestUserHandlerGet(t *testing.T) {
	users := &mockUsers{findOneFunc: func(_ context.Context, id string) (*model.User, error) {
		if id == "u1" {
			return &model.User{ID: "u1", Email: "a@example.com", PasswordHash: "secret-hash", Role: model.RoleGuest}, nil
		}
		return nil, svcErr(service.ErrNotFound, "user not found")
	}}
	h := NewUserHandler(users, nopLog())

	rec := do(t, http.MethodGet, "/users/:id", "/users/u1", bearerFor(t, "u1", model.RoleGuest), "", h.Get, authed())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body)
	}

	rec = do(t, http.MethodGet, "/users/:id", "/users/nope", bearerFor(t, "u1", model.RoleAdmin), "", h.Get, authed())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUserHandlerSoftDeletePolicy(t *testing.T) {
	accounts := map[string]*model.User{
		"admin-1": {ID: "admin-1", Role: model.RoleAdmin},
		"admin-2": {ID: "admin-2", Role: model.RoleAdmin},
		"guest-1": {ID: "guest-1", Role: model.RoleGuest},
	}
	var deletedBy string
	users := &mockUsers{
		findOneFunc: func(_ context.Context, id string) (*model.User, error) {
			if u, ok := accounts[id]; ok {
				return u, nil
			}
			return nil, svcErr(service.ErrNotFound, "user not found")
		},
		softDeleteFunc: func(_ context.Context, id, by string) (*model.User, error) {
			deletedBy = by
			u := *accounts[id]
			return &u, nil
		},
	}
	h := NewUserHandler(users, nopLog())

	tests := []struct {
		name   string
		caller string
		role   model.Role
		target string
		want   int
	}{
		{"admin deletes guest", "admin-1", model.RoleAdmin, "guest-1", http.StatusOK},
		{"admin deletes self", "admin-1", model.RoleAdmin, "admin-1", http.StatusForbidden},
		{"admin deletes admin", "admin-1", model.RoleAdmin, "admin-2", http.StatusForbidden},
		{"guest deletes guest", "guest-2", model.RoleGuest, "guest-1", http.StatusForbidden},
		{"missing target", "admin-1", model.RoleAdmin, "ghost", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deletedBy = ""
			rec := do(t, http.MethodDelete, "/users/:id", "/users/"+tt.target, bearerFor(t, tt.caller, tt.role), "", h.SoftDelete, authed())
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
			if tt.want == http.StatusOK && deletedBy != tt.caller {
				t.Fatalf("deletedBy = %q, want %q", deletedBy, tt.caller)
			}
		})
	}
}

func TestUserHandlerBulkDelete(t *testing.T) {
	var gotIDs []string
	users := &mockUsers{bulkFunc: func(_ context.Context, ids []string, by string) model.BulkDeleteResult {
		gotIDs = ids
		return model.BulkDeleteResult{Deleted: 1, Errors: []string{"u2: user not found"}}
	}}
	h := NewUserHandler(users, nopLog())
	auth := bearerFor(t, "admin-1", model.RoleAdmin)

	rec := do(t, http.MethodDelete, "/users/bulk/delete", "/users/bulk/delete", auth, `{"ids":["u1","u2"]}`, h.BulkDelete, authed())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var res model.BulkDeleteResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Deleted != 1 || len(res.Errors) != 1 || len(gotIDs) != 2 {
		t.Fatalf("result = %+v, ids = %v", res, gotIDs)
	}

	rec = do(t, http.MethodDelete, "/users/bulk/delete", "/users/bulk/delete", auth, `{"ids":[]}`, h.BulkDelete, authed())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty ids: status = %d, want 400", rec.Code)
	}
}

func TestUserHandlerPurge(t *testing.T) {
	removed := ""
	users := &mockUsers{removeFunc: func(_ context.Context, id string) error {
		if id == "ghost" {
			return svcErr(service.ErrNotFound, "user not found")
		}
		removed = id
		return nil
	}}
	h := NewUserHandler(users, nopLog())
	auth := bearerFor(t, "admin-1", model.RoleAdmin)

	if rec := do(t, http.MethodDelete, "/users/:id/purge", "/users/u9/purge", auth, "", h.Purge, authed()); rec.Code != http.StatusNoContent || removed != "u9" {
		t.Fatalf("purge: status = %d, removed = %q", rec.Code, removed)
	}
	if rec := do(t, http.MethodDelete, "/users/:id/purge", "/users/admin-1/purge", auth, "", h.Purge, authed()); rec.Code != http.StatusForbidden {
		t.Fatalf("self purge: status = %d, want 403", rec.Code)
	}
	if rec := do(t, http.MethodDelete, "/users/:id/purge", "/users/ghost/purge", auth, "", h.Purge, authed()); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: status = %d, want 404", rec.Code)
	}
}

func TestUserHandlerListAll(t *testing.T) {
	var sawDeleted bool
	users := &mockUsers{findAllFunc: func(_ context.Context, includeDeleted bool) ([]model.User, error) {
		sawDeleted = includeDeleted
		return []model.User{{ID: "u1"}}, nil
	}}
	h := NewUserHandler(users, nopLog())
	rec := do(t, http.MethodGet, "/users/all", "/users/all", bearerFor(t, "admin-1", model.RoleAdmin), "", h.ListAll, authed())
	if rec.Code != http.StatusOK || !sawDeleted {
		t.Fatalf("status = %d, includeDeleted = %v", rec.Code, sawDeleted)
	}
}
