package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AuditEntry describes one mutating API request.
type AuditEntry struct {
	UserID     string
	Action     string
	Resource   string
	Method     string
	Path       string
	StatusCode int
	RequestID  string
	IPAddress  string
	Timestamp  time.Time
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	RecordAccess(ctx context.Context, entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(ctx context.Context, entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(ctx context.Context, entry AuditEntry) error {
	return f(ctx, entry)
}

// Audit records every successful mutating request under /api. The login
// route is skipped so credentials never reach the trail. A failing recorder
// is logged and does not affect the response.
func Audit(logger zerolog.Logger, recorder AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !isAuditable(req.Method, req.URL.Path) {
				return next(c)
			}

			err := next(c)
			if err != nil {
				return err
			}
			status := c.Response().Status
			if status >= http.StatusBadRequest {
				return nil
			}

			resource := resourceOf(req.URL.Path)
			entry := AuditEntry{
				Action:     methodToAction(req.Method) + " " + resource,
				Resource:   resource,
				Method:     req.Method,
				Path:       req.URL.Path,
				StatusCode: status,
				IPAddress:  c.RealIP(),
				Timestamp:  time.Now().UTC(),
			}
			entry.UserID, _ = c.Get("user_id").(string)
			entry.RequestID, _ = c.Get("request_id").(string)

			if recorder != nil {
				if recErr := recorder.RecordAccess(req.Context(), entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}
			return nil
		}
	}
}

func isAuditable(method, path string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return false
	}
	return strings.HasPrefix(path, "/api/") && path != "/api/login"
}

func methodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// resourceOf returns the first path segment after /api/.
//
//	/api/appointments/42     -> appointments
//	/api/labresults/7/ack... -> labresults
func resourceOf(path string) string {
	rest := strings.TrimPrefix(path, "/api/")
	if seg, _, _ := strings.Cut(rest, "/"); seg != "" {
		return seg
	}
	return "unknown"
}
