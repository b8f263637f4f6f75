package integration

import (
	"context"
	"testing"

	"github.com/carepoint/hms/pkg/apperr"
)

func TestPatientCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, "pat")

	first := s.createPatient(t, "Ada", "Lovelace")
	second := s.createPatient(t, "Grace", "Hopper")

	t.Run("codes come from the sequence", func(t *testing.T) {
		if first.ID != "PT-1000" {
			t.Errorf("expected PT-1000, got %s", first.ID)
		}
		if second.ID != "PT-1001" {
			t.Errorf("expected PT-1001, got %s", second.ID)
		}
	})

	t.Run("get by code", func(t *testing.T) {
		p, err := s.patients.ByCode(ctx, second.ID)
		if err != nil {
			t.Fatalf("ByCode: %v", err)
		}
		if p.Name() != "Grace Hopper" {
			t.Errorf("expected Grace Hopper, got %s", p.Name())
		}
		if p.DateOfBirth.Format("2006-01-02") != "1980-05-17" {
			t.Errorf("unexpected date_of_birth %s", p.DateOfBirth)
		}
		if p.Gender == nil || *p.Gender != "female" {
			t.Errorf("expected gender female, got %v", p.Gender)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := s.patients.ByCode(ctx, "PT-9999")
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("resolve by full name", func(t *testing.T) {
		p, err := s.patients.Resolve(ctx, "Ada Lovelace")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if p.Code != first.ID {
			t.Errorf("expected %s, got %s", first.ID, p.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		items, err := s.patients.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 patients, got %d", len(items))
		}
	})

	t.Run("detail with no history", func(t *testing.T) {
		d, err := s.patients.Detail(ctx, first.ID)
		if err != nil {
			t.Fatalf("Detail: %v", err)
		}
		if len(d.Appointments) != 0 || len(d.Prescriptions) != 0 || len(d.LabResults) != 0 {
			t.Errorf("expected empty history, got %+v", d)
		}
	})
}
