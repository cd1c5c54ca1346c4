package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		authenticated bool
		role          models.Role
		want          Decision
	}{
		{"anonymous home page", "/", false, models.RoleViewer, Allow},
		{"anonymous about page", "/about", false, models.RoleViewer, Allow},
		{"anonymous login page", "/login", false, models.RoleViewer, Allow},
		{"anonymous dashboard", "/dashboard", false, models.RoleViewer, RedirectLogin},
		{"anonymous nested dashboard", "/dashboard/people/abc", false, models.RoleViewer, RedirectLogin},
		{"anonymous admin path", "/dashboard/editions", false, models.RoleViewer, RedirectLogin},
		{"signed-in login page", "/login", true, models.RoleViewer, RedirectDashboard},
		{"signed-in home page", "/", true, models.RoleEditor, RedirectDashboard},
		{"signed-in dashboard", "/dashboard", true, models.RoleViewer, Allow},
		{"viewer roster", "/dashboard/roster/e1", true, models.RoleViewer, Allow},
		{"viewer admin path", "/dashboard/editions", true, models.RoleViewer, RedirectDashboard},
		{"editor admin path", "/dashboard/tribes", true, models.RoleEditor, RedirectDashboard},
		{"editor nested admin path", "/dashboard/sectors/s1/delete", true, models.RoleEditor, RedirectDashboard},
		{"admin admin path", "/dashboard/editions", true, models.RoleAdmin, Allow},
		{"admin tribes", "/dashboard/tribes", true, models.RoleAdmin, Allow},
		{"editor person page", "/dashboard/people/abc", true, models.RoleEditor, Allow},
		{"signed-in public page", "/about", true, models.RoleViewer, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.path, tt.authenticated, tt.role)
			if got != tt.want {
				t.Errorf("Decide(%q, %v, %s) = %v, want %v", tt.path, tt.authenticated, tt.role, got, tt.want)
			}
		})
	}
}

func TestIsAdminPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/dashboard/editions", true},
		{"/dashboard/editions/e1/delete", true},
		{"/dashboard/tribes", true},
		{"/dashboard/sectors", true},
		{"/dashboard", false},
		{"/dashboard/roster/e1", false},
		{"/dashboard/editionsfoo", false},
	}

	for _, tt := range tests {
		if got := isAdminPath(tt.path); got != tt.want {
			t.Errorf("isAdminPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// stubProfiles backs a RoleResolver without a database.
type stubProfiles struct {
	roles map[string]models.Role
}

func (s *stubProfiles) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	role, ok := s.roles[userID]
	if !ok {
		return nil, context.Canceled
	}
	return &models.Profile{UserID: userID, Role: role}, nil
}

func TestGuard(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	roles := auth.NewRoleResolver(&stubProfiles{roles: map[string]models.Role{
		"admin-1":  models.RoleAdmin,
		"editor-1": models.RoleEditor,
	}})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", UserID(r.Context()))
		w.Header().Set("X-Role", string(RoleFrom(r.Context())))
		w.WriteHeader(http.StatusOK)
	})
	handler := Guard(sessions, roles)(next)

	request := func(path, userID string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		if userID != "" {
			token, err := sessions.Issue(&models.User{ID: userID, Email: userID + "@example.com"})
			if err != nil {
				t.Fatalf("Failed to issue session: %v", err)
			}
			r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	t.Run("unauthenticated dashboard redirects to login", func(t *testing.T) {
		w := request("/dashboard", "")
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Errorf("Got %d -> %q, want 302 -> /login", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("authenticated login page redirects home", func(t *testing.T) {
		w := request("/login", "editor-1")
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Errorf("Got %d -> %q, want 302 -> /dashboard", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("editor blocked from admin area", func(t *testing.T) {
		w := request("/dashboard/editions", "editor-1")
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Errorf("Got %d -> %q, want 302 -> /dashboard", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("admin passes with identity in context", func(t *testing.T) {
		w := request("/dashboard/editions", "admin-1")
		if w.Code != http.StatusOK {
			t.Fatalf("Got %d, want 200", w.Code)
		}
		if w.Header().Get("X-User") != "admin-1" || w.Header().Get("X-Role") != "admin" {
			t.Errorf("Context = %q/%q, want admin-1/admin", w.Header().Get("X-User"), w.Header().Get("X-Role"))
		}
	})

	t.Run("unknown profile degrades to viewer", func(t *testing.T) {
		w := request("/dashboard", "stranger")
		if w.Code != http.StatusOK {
			t.Fatalf("Got %d, want 200", w.Code)
		}
		if w.Header().Get("X-Role") != "viewer" {
			t.Errorf("Role = %q, want viewer", w.Header().Get("X-Role"))
		}
	})

	t.Run("garbage cookie is treated as anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "not-a-token"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Errorf("Got %d -> %q, want 302 -> /login", w.Code, w.Header().Get("Location"))
		}
	})
}
