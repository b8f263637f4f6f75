package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/pkg/apperr"
)

var testKey = bytes.Repeat([]byte{0x42}, 32)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)
	actor := Actor{UserID: uuid.New(), Username: "house", Role: RoleDoctor}

	tok, err := issuer.Issue(actor)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	got, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got != actor {
		t.Errorf("expected %+v, got %+v", actor, got)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := issuer.Issue(Actor{UserID: uuid.New(), Role: RoleNurse})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Parse(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenIssuer_WrongKey(t *testing.T) {
	tok, _ := NewTokenIssuer(testKey, time.Hour).Issue(Actor{UserID: uuid.New()})
	other := NewTokenIssuer(bytes.Repeat([]byte{0x24}, 32), time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("expected error for token signed with another key")
	}
}

func TestTokenMiddleware_NoHeaderPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := TokenMiddleware(NewTokenIssuer(testKey, time.Hour))(func(c echo.Context) error {
		called = true
		if _, ok := ActorFromContext(c.Request().Context()); ok {
			t.Error("expected no actor without a token")
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected next handler to run")
	}
}

func TestTokenMiddleware_SetsActor(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)
	actor := Actor{UserID: uuid.New(), Username: "cuddy", Role: RoleAdmin}
	tok, _ := issuer.Issue(actor)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := TokenMiddleware(issuer)(func(c echo.Context) error {
		got, ok := ActorFromContext(c.Request().Context())
		if !ok || got != actor {
			t.Errorf("expected actor %+v, got %+v", actor, got)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenMiddleware_RejectsBadToken(t *testing.T) {
	for _, header := range []string{"Bearer not-a-jwt", "Basic abc", "Bearer"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		c := e.NewContext(req, httptest.NewRecorder())

		err := TokenMiddleware(NewTokenIssuer(testKey, time.Hour))(func(echo.Context) error {
			t.Errorf("%q: next handler must not run", header)
			return nil
		})(c)
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("%q: expected unauthorized, got %v", header, err)
		}
	}
}

func TestResolveSigningKey(t *testing.T) {
	key, generated, err := ResolveSigningKey(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !generated || len(key) != 32 {
		t.Errorf("expected generated 32-byte key, got %d bytes (generated=%v)", len(key), generated)
	}

	key, generated, _ = ResolveSigningKey(testKey)
	if generated || !bytes.Equal(key, testKey) {
		t.Error("expected configured key to be returned unchanged")
	}
}
