package clinical

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
	api.GET("/prescriptions", h.ListPrescriptions)
	api.POST("/prescriptions", h.CreatePrescription)
	api.PUT("/prescriptions/:id", h.UpdatePrescription)

	api.GET("/labresults", h.ListLabResults)
	api.POST("/labresults", h.CreateLabResult)
	api.POST("/labresults/:id/acknowledge", h.AcknowledgeLabResult)

	api.GET("/medical_records", h.ListMedicalRecords)
	api.POST("/medical_records", h.CreateMedicalRecord)

	api.GET("/vital_signs", h.ListVitalSigns)
	api.POST("/vital_signs", h.CreateVitalSign)
}

func created(c echo.Context, id uuid.UUID) error {
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "id": id})
}

func pathID(c echo.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("%s not found", what)
	}
	return id, nil
}

// -- Prescriptions --

func (h *Handler) ListPrescriptions(c echo.Context) error {
	rows, err := h.svc.ListPrescriptions(c.Request().Context(), c.QueryParam("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var in PrescriptionInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	actor, err := h.resolver.Resolve(c)
	if err != nil {
		return err
	}
	rx, err := h.svc.CreatePrescription(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return created(c, rx.ID)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := pathID(c, "prescription")
	if err != nil {
		return err
	}
	var in PrescriptionUpdate
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if _, err := h.svc.UpdatePrescription(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// -- Lab results --

func (h *Handler) ListLabResults(c echo.Context) error {
	critical := c.QueryParam("critical") == "true"
	rows, err := h.svc.ListLabResults(c.Request().Context(), c.QueryParam("patient_id"), critical)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CreateLabResult(c echo.Context) error {
	var in LabResultInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	actor, err := h.resolver.Resolve(c)
	if err != nil {
		return err
	}
	lr, err := h.svc.CreateLabResult(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return created(c, lr.ID)
}

func (h *Handler) AcknowledgeLabResult(c echo.Context) error {
	id, err := pathID(c, "lab result")
	if err != nil {
		return err
	}
	if err := h.svc.AcknowledgeLabResult(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// -- Medical records --

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	rows, err := h.svc.ListMedicalRecords(c.Request().Context(), c.QueryParam("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var in MedicalRecordInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	actor, err := h.resolver.Resolve(c)
	if err != nil {
		return err
	}
	mr, err := h.svc.CreateMedicalRecord(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return created(c, mr.ID)
}

// -- Vital signs --

func (h *Handler) ListVitalSigns(c echo.Context) error {
	rows, err := h.svc.ListVitalSigns(c.Request().Context(), c.QueryParam("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CreateVitalSign(c echo.Context) error {
	var in VitalSignInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	vs, err := h.svc.CreateVitalSign(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return created(c, vs.ID)
}
