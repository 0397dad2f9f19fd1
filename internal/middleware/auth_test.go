package middleware_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"nearhelp/internal/domain"
	"nearhelp/internal/middleware"
	"nearhelp/pkg/e"
)

type stubAuth struct {
	identity domain.Identity
	err      error
}

func (s stubAuth) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	if s.err != nil {
		return domain.Identity{}, s.err
	}
	if token != "good-token" {
		return domain.Identity{}, fmt.Errorf("authenticate: %w", e.ErrUnauthenticated)
	}
	return s.identity, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_SetsIdentity(t *testing.T) {
	t.Parallel()

	want := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser, Email: "a@b.c"}

	var got domain.Identity
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = middleware.IdentityFrom(r.Context())
	})

	handler := middleware.Authenticate(stubAuth{identity: want}, discardLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/sos/active", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok || got != want {
		t.Fatalf("identity not propagated: %+v", got)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	t.Parallel()

	handler := middleware.Authenticate(stubAuth{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sos/active", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	t.Parallel()

	handler := middleware.Authenticate(stubAuth{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sos/active", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role domain.Role
		want int
	}{
		{"admin passes", domain.RoleAdmin, http.StatusOK},
		{"user denied", domain.RoleUser, http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			identity := domain.Identity{UserID: uuid.New(), Role: tc.role}
			auth := middleware.Authenticate(stubAuth{identity: identity}, discardLogger())
			guard := middleware.RequireAdmin(discardLogger())

			handler := auth(guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
			req.Header.Set("Authorization", "Bearer good-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	t.Parallel()

	handler := middleware.RequireAdmin(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
