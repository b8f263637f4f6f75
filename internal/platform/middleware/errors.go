package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carepoint/hms/pkg/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// ErrorHandler renders apperr and echo errors as ErrorResponse. The cause of
// a persistence failure is logged and never sent to the client.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		rid, _ := c.Get("request_id").(string)
		status, body := errorBody(err)
		body.RequestID = rid

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Str("request_id", rid).Msg("write error response")
		}
	}
}

func errorBody(err error) (int, ErrorResponse) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.StatusCode(), ErrorResponse{Message: ae.Message, Errors: ae.FieldMessages()}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Code < http.StatusInternalServerError {
			if s, ok := he.Message.(string); ok {
				msg = s
			} else if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		return he.Code, ErrorResponse{Message: msg}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: "internal error"}
}
