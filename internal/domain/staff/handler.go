package staff

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
	api.POST("/login", h.Login)
	api.GET("/logout", h.Logout)
	api.GET("/user/profile", h.Profile)
	api.GET("/dashboard/doctors", h.Doctors)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	res, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Logout is a no-op; tokens expire on their own.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Profile(c echo.Context) error {
	actor, err := h.resolver.Resolve(c)
	if err != nil {
		return err
	}
	u, err := h.svc.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Doctors(c echo.Context) error {
	items, err := h.svc.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
