package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/hms/pkg/apperr"
)

type mockRecorder struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (m *mockRecorder) RecordAccess(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func runAudit(t *testing.T, rec AuditRecorder, method, path string, handler echo.HandlerFunc) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("request_id", "req-123")
	return c, Audit(zerolog.Nop(), rec)(handler)(c)
}

func created(c echo.Context) error {
	c.Set("user_id", "b3c1f8a2-6c1e-4f43-9d43-2a3f5c7d9e10")
	return c.JSON(http.StatusCreated, map[string]bool{"success": true})
}

func TestAudit_RecordsMutation(t *testing.T) {
	rec := &mockRecorder{}
	if _, err := runAudit(t, rec, http.MethodPost, "/api/appointments", created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 entry, got %d", rec.count())
	}

	got := rec.entries[0]
	if got.Action != "create appointments" {
		t.Errorf("expected action 'create appointments', got %q", got.Action)
	}
	if got.UserID != "b3c1f8a2-6c1e-4f43-9d43-2a3f5c7d9e10" {
		t.Errorf("expected user id from context, got %q", got.UserID)
	}
	if got.RequestID != "req-123" || got.StatusCode != http.StatusCreated {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestAudit_ResourceFromNestedPath(t *testing.T) {
	rec := &mockRecorder{}
	runAudit(t, rec, http.MethodPost, "/api/labresults/7/acknowledge", created)
	if rec.entries[0].Resource != "labresults" {
		t.Errorf("expected labresults, got %q", rec.entries[0].Resource)
	}
}

func TestAudit_SkipsReadsLoginAndFailures(t *testing.T) {
	rec := &mockRecorder{}
	runAudit(t, rec, http.MethodGet, "/api/patients", created)
	runAudit(t, rec, http.MethodPost, "/api/login", created)
	runAudit(t, rec, http.MethodPost, "/health", created)
	_, err := runAudit(t, rec, http.MethodPost, "/api/patients", func(echo.Context) error {
		return apperr.Validation("first_name is required")
	})
	if err == nil {
		t.Error("expected handler error to propagate")
	}
	if rec.count() != 0 {
		t.Errorf("expected no entries, got %d", rec.count())
	}
}

func TestAudit_RecorderErrorDoesNotFailRequest(t *testing.T) {
	rec := &mockRecorder{err: errors.New("db down")}
	if _, err := runAudit(t, rec, http.MethodDelete, "/api/appointments/1", created); err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if rec.count() != 1 {
		t.Errorf("expected recorder to be called once, got %d", rec.count())
	}
}

func TestAudit_NilRecorder(t *testing.T) {
	if _, err := runAudit(t, nil, http.MethodPut, "/api/appointments/1", created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMethodToAction(t *testing.T) {
	cases := map[string]string{
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodPatch:  "update",
		http.MethodDelete: "delete",
		http.MethodGet:    "read",
	}
	for method, want := range cases {
		if got := methodToAction(method); got != want {
			t.Errorf("%s: expected %s, got %s", method, want, got)
		}
	}
}
