package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/domain/dashboard"
	"github.com/carepoint/hms/internal/domain/scheduling"
	"github.com/carepoint/hms/internal/platform/auth"
)

func TestDashboardCountsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, "dashe")
	repo := dashboard.NewRepoPG(s.pool)

	c, err := repo.Counts(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if c.TotalPatients != 0 || c.TodaysAppointments != 0 || c.PendingPrescriptions != 0 || c.CriticalLabs != 0 {
		t.Errorf("expected zero counts, got %+v", c)
	}
	if c.AvgHeartRate != nil || c.AvgOxygen != nil || c.AvgSystolic != nil || c.AvgDiastolic != nil {
		t.Errorf("expected nil averages on empty tables, got %+v", c)
	}

	months, err := repo.MonthlyRegistrations(ctx)
	if err != nil {
		t.Fatalf("MonthlyRegistrations: %v", err)
	}
	for _, m := range months {
		if m.Count != 0 {
			t.Errorf("expected no registrations, got %+v", m)
		}
	}
	if _, err := repo.AppointmentStatuses(ctx); err != nil {
		t.Fatalf("AppointmentStatuses: %v", err)
	}
	if _, err := repo.CommonConditions(ctx, 5); err != nil {
		t.Fatalf("CommonConditions: %v", err)
	}
}

func TestDashboardCountsAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newStack(t, "dash")
	doctor := s.createUser(t, "house", auth.RoleDoctor)
	underscored := s.createPatient(t, "Ann_e", "Smith")
	plain := s.createPatient(t, "Annie", "Smith")
	repo := dashboard.NewRepoPG(s.pool)

	appts := scheduling.NewService(scheduling.NewRepoPG(s.pool), s.patients, s.staff, s.notes, s.tx)
	if _, err := appts.Create(ctx, doctor, scheduling.CreateInput{
		PatientID: plain.ID, Date: today(), Time: "08:00", Reason: "Annual physical", Telemedicine: true,
	}); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	for _, bp := range []string{"120/80", "130/90", "bad"} {
		if _, err := s.pool.Exec(ctx, `
			INSERT INTO vital_sign (id, patient_id, heart_rate, blood_pressure, oxygen_saturation)
			VALUES ($1, $2, 70, $3, 98)`, uuid.New(), plain.UUID, bp); err != nil {
			t.Fatalf("insert vital sign %s: %v", bp, err)
		}
	}

	t.Run("counts", func(t *testing.T) {
		day, _ := time.Parse("2006-01-02", today())
		c, err := repo.Counts(ctx, day)
		if err != nil {
			t.Fatalf("Counts: %v", err)
		}
		if c.TotalPatients != 2 {
			t.Errorf("expected 2 patients, got %d", c.TotalPatients)
		}
		if c.TodaysAppointments != 1 || c.TelemedicineScheduled != 1 {
			t.Errorf("expected one telemedicine appointment today, got %+v", c)
		}
		if c.AvgHeartRate == nil || *c.AvgHeartRate != 70 {
			t.Errorf("expected heart rate average 70, got %v", c.AvgHeartRate)
		}
		if c.AvgSystolic == nil || *c.AvgSystolic != 125 {
			t.Errorf("expected systolic average 125, got %v", c.AvgSystolic)
		}
		if c.AvgDiastolic == nil || *c.AvgDiastolic != 85 {
			t.Errorf("expected diastolic average 85, got %v", c.AvgDiastolic)
		}
	})

	t.Run("underscore is literal", func(t *testing.T) {
		hits, err := repo.SearchPatients(ctx, "n_e", 10)
		if err != nil {
			t.Fatalf("SearchPatients: %v", err)
		}
		if len(hits) != 1 || hits[0].Code != underscored.ID {
			t.Errorf("expected only %s, got %+v", underscored.ID, hits)
		}
	})

	t.Run("percent is literal", func(t *testing.T) {
		hits, err := repo.SearchPatients(ctx, "%", 10)
		if err != nil {
			t.Fatalf("SearchPatients: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("expected no hits, got %+v", hits)
		}
	})

	t.Run("code search", func(t *testing.T) {
		hits, err := repo.SearchPatients(ctx, "pt-100", 10)
		if err != nil {
			t.Fatalf("SearchPatients: %v", err)
		}
		if len(hits) != 2 {
			t.Errorf("expected 2 hits, got %d", len(hits))
		}
	})

	t.Run("appointment search", func(t *testing.T) {
		hits, err := repo.SearchAppointments(ctx, "physical", 10)
		if err != nil {
			t.Fatalf("SearchAppointments: %v", err)
		}
		if len(hits) != 1 {
			t.Fatalf("expected 1 hit, got %d", len(hits))
		}
		if scheduling.DisplayID(hits[0].Number) != "A0001" || hits[0].Start != "08:00" {
			t.Errorf("unexpected hit %+v", hits[0])
		}
		if hits[0].PatientName != "Annie Smith" {
			t.Errorf("expected Annie Smith, got %s", hits[0].PatientName)
		}
	})
}
