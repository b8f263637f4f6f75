package task

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/pkg/apperr"
)

type Handler struct {
	svc      *Service
	resolver *auth.Resolver
}

func NewHandler(svc *Service, resolver *auth.Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/pending_actions", h.List)
	api.POST("/pending_actions", h.Create)
	api.POST("/pending_actions/:id/complete", h.Complete)
}

func (h *Handler) List(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	actor, err := h.resolver.Resolve(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "id": a.ID})
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("pending action not found")
	}
	if err := h.svc.Complete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
