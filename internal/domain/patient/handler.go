package patient

import (
	"net/http"

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
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:patient_id", h.Get)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	v, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "patient": v})
}

func (h *Handler) Get(c echo.Context) error {
	d, err := h.svc.Detail(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
