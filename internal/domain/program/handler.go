package program

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/pkg/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/programs", h.List)
	api.POST("/programs/:id/enroll", h.Enroll)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Enroll(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errProgramNotFound
	}
	var in EnrollInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if _, err := h.svc.Enroll(c.Request().Context(), id, in.PatientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
