package inventory

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
	api.GET("/medications/inventory", h.List)
	api.POST("/medications/inventory", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c echo.Context) error {
	var in StockUpdate
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	item, err := h.svc.UpdateStock(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "medication": item})
}
