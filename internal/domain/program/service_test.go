package program

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type mockRepo struct {
	programs    map[uuid.UUID]*Program
	enrollments []*Enrollment
	// skipCheck makes IsEnrolled miss, as when two requests race.
	skipCheck bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{programs: make(map[uuid.UUID]*Program)}
}

func (m *mockRepo) add(name string) *Program {
	p := &Program{ID: uuid.New(), Name: name}
	m.programs[p.ID] = p
	return p
}

func (m *mockRepo) List(_ context.Context) ([]*Program, error) {
	var out []*Program
	for _, p := range m.programs {
		cp := *p
		for _, e := range m.enrollments {
			if e.ProgramID == p.ID {
				cp.ParticipantCount++
			}
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Program, error) {
	p, ok := m.programs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) IsEnrolled(_ context.Context, programID, patientID uuid.UUID) (bool, error) {
	if m.skipCheck {
		return false, nil
	}
	for _, e := range m.enrollments {
		if e.ProgramID == programID && e.PatientID == patientID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) Enroll(_ context.Context, e *Enrollment) error {
	for _, x := range m.enrollments {
		if x.ProgramID == e.ProgramID && x.PatientID == e.PatientID {
			return fmt.Errorf("%w: enrollment_program_patient_key", db.ErrDuplicate)
		}
	}
	e.ID = uuid.New()
	m.enrollments = append(m.enrollments, e)
	return nil
}

type mockPatients struct{ byCode map[string]*patient.Patient }

func (m *mockPatients) ByCode(_ context.Context, code string) (*patient.Patient, error) {
	if p, ok := m.byCode[code]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("patient not found")
}

func newTestService() (*Service, *mockRepo, *Program) {
	repo := newMockRepo()
	prog := repo.add("Diabetes Care")
	patients := &mockPatients{byCode: map[string]*patient.Patient{
		"PT-1000": {ID: uuid.New(), Code: "PT-1000"},
		"PT-1001": {ID: uuid.New(), Code: "PT-1001"},
	}}
	return NewService(repo, patients, db.PassthroughTransactor{}), repo, prog
}

func TestEnroll(t *testing.T) {
	svc, repo, prog := newTestService()
	e, err := svc.Enroll(context.Background(), prog.ID, "PT-1000")
	if err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}
	if e.Status != EnrollmentActive || e.ProgramID != prog.ID {
		t.Errorf("unexpected enrollment %+v", e)
	}
	svc.Enroll(context.Background(), prog.ID, "PT-1001")

	items, _ := svc.List(context.Background())
	if len(items) != 1 || items[0].ParticipantCount != 2 {
		t.Errorf("expected 2 participants, got %+v", items)
	}
	if len(repo.enrollments) != 2 {
		t.Errorf("expected 2 enrollments, got %d", len(repo.enrollments))
	}
}

func TestEnroll_Duplicate(t *testing.T) {
	svc, repo, prog := newTestService()
	if _, err := svc.Enroll(context.Background(), prog.ID, "PT-1000"); err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}

	_, err := svc.Enroll(context.Background(), prog.ID, "PT-1000")
	if !apperr.Is(err, apperr.KindDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if err.Error() != "patient already enrolled" {
		t.Errorf("unexpected message %q", err.Error())
	}

	repo.skipCheck = true
	if _, err := svc.Enroll(context.Background(), prog.ID, "PT-1000"); !apperr.Is(err, apperr.KindDuplicate) {
		t.Errorf("expected the unique constraint to map to duplicate, got %v", err)
	}
	if len(repo.enrollments) != 1 {
		t.Errorf("expected 1 enrollment, got %d", len(repo.enrollments))
	}
}

func TestEnroll_NotFound(t *testing.T) {
	svc, _, prog := newTestService()
	if _, err := svc.Enroll(context.Background(), uuid.New(), "PT-1000"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected program not found, got %v", err)
	}
	if _, err := svc.Enroll(context.Background(), prog.ID, "PT-4040"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected patient not found, got %v", err)
	}
	if _, err := svc.Enroll(context.Background(), prog.ID, " "); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation, got %v", err)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewService(newMockRepo(), &mockPatients{}, db.PassthroughTransactor{})
	items, err := svc.List(context.Background())
	if err != nil || items == nil {
		t.Fatalf("expected empty list, got %v, %v", items, err)
	}
}

func TestHandler_Enroll(t *testing.T) {
	svc, _, prog := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"patient_id":"PT-1000"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(prog.ID.String())
	if err := h.Enroll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Enroll(c); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
