// Package apperr defines the error taxonomy shared by services and the HTTP
// error handler.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/hengadev/errsx"
)

// Kind classifies an error for the caller.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindDuplicate    Kind = "duplicate"
	KindUnauthorized Kind = "unauthorized"
	KindPersistence  Kind = "persistence"
)

// Error is a classified application error. Message is safe to show to
// clients; Err carries the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  errsx.Map
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FieldMessages returns the per-field validation messages sorted by field.
func (e *Error) FieldMessages() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = fmt.Sprint(e.Fields[k])
	}
	return out
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Invalid turns accumulated field errors into a validation error. It returns
// nil when no field failed.
func Invalid(fields errsx.Map) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func Duplicate(format string, args ...any) error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure. The cause is kept for logging only.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindPersistence, Message: "internal error", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf reports the kind of err. Unclassified errors are persistence errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
