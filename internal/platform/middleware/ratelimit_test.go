package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func rateLimited(cfg RateLimitConfig) echo.HandlerFunc {
	return RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func callFrom(e *echo.Echo, h echo.HandlerFunc, addr string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestRateLimit_RequestsWithinBurst(t *testing.T) {
	e := echo.New()
	h := rateLimited(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})

	for i := 0; i < 5; i++ {
		rec, err := callFrom(e, h, "10.0.0.1:4000")
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: X-RateLimit-Limit = %q", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsBurst(t *testing.T) {
	e := echo.New()
	h := rateLimited(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	for i := 0; i < 2; i++ {
		if _, err := callFrom(e, h, "10.0.0.1:4000"); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
	}

	rec, err := callFrom(e, h, "10.0.0.1:4000")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	e := echo.New()
	h := rateLimited(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	if _, err := callFrom(e, h, "10.0.0.1:4000"); err != nil {
		t.Fatalf("first client: %v", err)
	}
	if _, err := callFrom(e, h, "10.0.0.1:4000"); err == nil {
		t.Fatal("expected first client to be limited")
	}
	if _, err := callFrom(e, h, "10.0.0.2:4000"); err != nil {
		t.Fatalf("second client should have its own bucket: %v", err)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	e := echo.New()
	h := rateLimited(RateLimitConfig{})

	for i := 0; i < 50; i++ {
		if _, err := callFrom(e, h, "10.0.0.1:4000"); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestLimiterStore_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	store := newLimiterStore(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1, IdleTTL: time.Minute})
	store.now = func() time.Time { return now }

	store.get("a")
	store.get("b")
	now = now.Add(2 * time.Minute)
	store.get("b")

	if _, ok := store.clients["a"]; ok {
		t.Error("expected idle client a to be evicted")
	}
	if _, ok := store.clients["b"]; !ok {
		t.Error("expected active client b to be kept")
	}
}
