package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/pkg/apperr"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"first_name":"Ada","last_name":"King","email":"ada@example.com","phone":"555","date_of_birth":"1815-12-10"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var res struct {
		Success bool `json:"success"`
		Patient View `json:"patient"`
	}
	json.Unmarshal(rec.Body.Bytes(), &res)
	if !res.Success || res.Patient.ID != "PT-1000" || res.Patient.Name != "Ada King" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Create_BadRequest(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Create(c); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_ListAndGet(t *testing.T) {
	h, e := newTestHandler()
	v, _ := h.svc.Create(context.Background(), validInput())

	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	var items []View
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(items))
	}

	rec = httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(v.ID)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"conditions":[]`) {
		t.Errorf("expected empty conditions array, got %s", rec.Body.String())
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("patient_id")
	c.SetParamValues("PT-0000")
	if err := h.Get(c); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
