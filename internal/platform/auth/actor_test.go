package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/pkg/apperr"
)

func newContext(ctx context.Context) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResolver_PrefersTokenActor(t *testing.T) {
	tokenActor := Actor{UserID: uuid.New(), Username: "wilson", Role: RoleDoctor}
	r := NewResolver(func(context.Context) (Actor, error) {
		t.Error("fallback must not be called when a token actor exists")
		return Actor{}, nil
	})

	got, err := r.Resolve(newContext(WithActor(context.Background(), tokenActor)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tokenActor {
		t.Errorf("expected %+v, got %+v", tokenActor, got)
	}
}

func TestResolver_UsesFallback(t *testing.T) {
	fallback := Actor{UserID: uuid.New(), Username: "default", Role: RoleDoctor}
	got, err := StaticResolver(fallback).Resolve(newContext(context.Background()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fallback {
		t.Errorf("expected fallback actor, got %+v", got)
	}
}

func TestResolver_FallbackError(t *testing.T) {
	boom := apperr.NotFound("no user available")
	r := NewResolver(func(context.Context) (Actor, error) { return Actor{}, boom })
	if _, err := r.Resolve(newContext(context.Background())); !errors.Is(err, boom) {
		t.Errorf("expected fallback error, got %v", err)
	}
}

func TestResolver_NoFallback(t *testing.T) {
	_, err := NewResolver(nil).Resolve(newContext(context.Background()))
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{"doctor", "nurse", "admin", "technician", "staff"} {
		if !ValidRole(r) {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if ValidRole("janitor") {
		t.Error("expected unknown role to be invalid")
	}
}
