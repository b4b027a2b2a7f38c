package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tanishqswami/fit-hub-management-system/internal/authz"
	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

func TestPagesHandler_Root_RedirectsToRoleHome(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleAdmin, authz.PathAdminHome},
		{model.RoleTrainer, authz.PathTrainerHome},
		{model.RoleMember, authz.PathMemberHome},
	}

	h := NewPagesHandler()

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			profile := &model.Profile{ID: "user-1", Role: tt.role}
			req = req.WithContext(middleware.ContextWithProfile(req.Context(), profile))
			w := httptest.NewRecorder()

			h.Root(w, req)

			resp := w.Result()
			if resp.StatusCode != http.StatusFound {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusFound)
			}
			if location := resp.Header.Get("Location"); location != tt.want {
				t.Errorf("Location = %q, want %q", location, tt.want)
			}
		})
	}
}

func TestPagesHandler_Root_UnknownRole_RedirectsToSignIn(t *testing.T) {
	h := NewPagesHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	profile := &model.Profile{ID: "user-1", Role: model.Role("ghost")}
	req = req.WithContext(middleware.ContextWithProfile(req.Context(), profile))
	w := httptest.NewRecorder()

	h.Root(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusFound)
	}
	if location := resp.Header.Get("Location"); location != authz.PathSignIn {
		t.Errorf("Location = %q, want %q", location, authz.PathSignIn)
	}
}

func TestPagesHandler_SignInPage_ReturnsViewDescriptor(t *testing.T) {
	h := NewPagesHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	w := httptest.NewRecorder()

	h.SignInPage(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got viewDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.View != "auth" {
		t.Errorf("view = %q, want %q", got.View, "auth")
	}
}

func TestPagesHandler_NotFound_Returns404Descriptor(t *testing.T) {
	h := NewPagesHandler()

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	w := httptest.NewRecorder()

	h.NotFound(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var got viewDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.View != "not_found" {
		t.Errorf("view = %q, want %q", got.View, "not_found")
	}
	if got.Path != "/no/such/page" {
		t.Errorf("path = %q, want %q", got.Path, "/no/such/page")
	}
}
