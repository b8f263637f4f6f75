package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/pkg/apperr"
)

const (
	RoleDoctor     = "doctor"
	RoleNurse      = "nurse"
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleStaff      = "staff"
)

var validRoles = map[string]bool{
	RoleDoctor: true, RoleNurse: true, RoleAdmin: true, RoleTechnician: true, RoleStaff: true,
}

// ValidRole reports whether role is a known staff role.
func ValidRole(role string) bool { return validRoles[role] }

// Actor is the staff member on whose behalf a mutation runs.
type Actor struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func (a Actor) IsZero() bool   { return a.UserID == uuid.Nil }
func (a Actor) IsDoctor() bool { return a.Role == RoleDoctor }

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && !a.IsZero()
}

// FallbackFunc supplies an actor for requests that carry no token.
type FallbackFunc func(ctx context.Context) (Actor, error)

// Resolver decides which actor a request acts as.
type Resolver struct {
	fallback FallbackFunc
}

// NewResolver returns a resolver that prefers the token actor and otherwise
// calls fallback. A nil fallback makes tokens mandatory.
func NewResolver(fallback FallbackFunc) *Resolver {
	return &Resolver{fallback: fallback}
}

func (r *Resolver) Resolve(c echo.Context) (Actor, error) {
	ctx := c.Request().Context()
	if a, ok := ActorFromContext(ctx); ok {
		return a, nil
	}
	if r == nil || r.fallback == nil {
		return Actor{}, apperr.Unauthorized("authentication required")
	}
	a, err := r.fallback(ctx)
	if err != nil {
		return Actor{}, err
	}
	c.Set("user_id", a.UserID.String())
	return a, nil
}

// StaticResolver always resolves to a. Used by handler tests.
func StaticResolver(a Actor) *Resolver {
	return NewResolver(func(context.Context) (Actor, error) { return a, nil })
}
