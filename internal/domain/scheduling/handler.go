package scheduling

import (
	"net/http"

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
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Create)
	api.PUT("/appointments/:id", h.Update)
	api.DELETE("/appointments/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("date"))
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
	return c.JSON(http.StatusCreated, map[string]any{
		"success":        true,
		"appointment_id": DisplayID(a.Number),
		"uuid":           a.ID,
	})
}

func (h *Handler) Update(c echo.Context) error {
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if _, err := h.svc.Update(c.Request().Context(), c.Param("id"), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
