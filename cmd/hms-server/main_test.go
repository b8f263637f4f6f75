package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carepoint/hms/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8000",
		Env:                "test",
		LogLevel:           "info",
		DBSchema:           "public",
		MigrationsDir:      "./migrations",
		AuthTokenTTL:       time.Hour,
		CORSOrigins:        []string{"http://localhost:3000"},
		ICUCapacity:        20,
		VentilatorCapacity: 15,
		IsolationCapacity:  10,
		RequestTimeout:     5 * time.Second,
		BodyLimit:          "1M",
	}
}

func newTestServer(t *testing.T) *server {
	t.Helper()
	srv, err := buildServer(context.Background(), testConfig(), zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}
	t.Cleanup(srv.close)
	return srv
}

func TestBuildServer_Routes(t *testing.T) {
	srv := newTestServer(t)

	registered := make(map[string]bool)
	for _, r := range srv.echo.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /health/db",
		"POST /api/login",
		"GET /api/logout",
		"GET /api/user/profile",
		"GET /api/dashboard/doctors",
		"GET /api/dashboard/stats",
		"GET /api/dashboard/appointments",
		"GET /api/patients",
		"POST /api/patients",
		"GET /api/appointments",
		"POST /api/appointments",
		"GET /api/prescriptions",
		"POST /api/prescriptions",
		"PUT /api/prescriptions/:id",
		"GET /api/labresults",
		"POST /api/labresults",
		"POST /api/labresults/:id/acknowledge",
		"GET /api/medical_records",
		"POST /api/medical_records",
		"GET /api/vital_signs",
		"POST /api/vital_signs",
		"GET /api/notifications",
		"GET /api/programs",
		"POST /api/programs/:id/enroll",
		"GET /api/medications/inventory",
		"POST /api/medications/inventory",
		"GET /api/pending_actions",
		"POST /api/pending_actions",
		"POST /api/pending_actions/:id/complete",
		"GET /api/audit_logs",
		"GET /api/analytics/patient_stats",
		"GET /api/search",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}

func TestBuildServer_Health(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected security headers")
	}
}

func TestBuildServer_DatabaseHealthWithoutPool(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestBuildServer_MalformedLoginBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if body["message"] != "invalid request body" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestBuildServer_RejectsBadToken(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBuildServer_InvalidSigningKey(t *testing.T) {
	cfg := testConfig()
	cfg.AuthSigningKey = "zz"
	if _, err := buildServer(context.Background(), cfg, zerolog.Nop(), nil); err == nil {
		t.Fatal("expected error for non-hex signing key")
	}
}

func TestMigrateTarget(t *testing.T) {
	cfg := testConfig()

	cmd := &cobra.Command{}
	cmd.Flags().String("schema", "", "")
	cmd.Flags().String("dir", "", "")

	schema, dir := migrateTarget(cmd, cfg)
	if schema != "public" || dir != "./migrations" {
		t.Errorf("defaults: got (%q, %q)", schema, dir)
	}

	_ = cmd.Flags().Set("schema", "ward")
	_ = cmd.Flags().Set("dir", "/srv/migrations")
	schema, dir = migrateTarget(cmd, cfg)
	if schema != "ward" || dir != "/srv/migrations" {
		t.Errorf("flags: got (%q, %q)", schema, dir)
	}
}

func TestNewLogger_Level(t *testing.T) {
	cfg := testConfig()

	cfg.LogLevel = "debug"
	if got := newLogger(cfg).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug, got %s", got)
	}

	cfg.LogLevel = "loud"
	if got := newLogger(cfg).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", got)
	}
}

func TestRootCommands(t *testing.T) {
	for _, build := range []func() *cobra.Command{serveCmd, migrateCmd, staffCmd} {
		cmd := build()
		if cmd.Use == "" || cmd.Short == "" {
			t.Errorf("command %q missing usage", cmd.Use)
		}
	}

	sub := map[string]bool{}
	for _, c := range migrateCmd().Commands() {
		sub[c.Use] = true
	}
	if !sub["up"] || !sub["status"] {
		t.Errorf("migrate subcommands: %v", sub)
	}
}
