package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	Counts(ctx context.Context, today time.Time) (*Counts, error)
	MonthlyRegistrations(ctx context.Context) ([]MonthlyCount, error)
	AppointmentStatuses(ctx context.Context) ([]StatusCount, error)
	CommonConditions(ctx context.Context, limit int) ([]ConditionCount, error)
	// Search methods match q as a case-insensitive substring.
	SearchPatients(ctx context.Context, q string, limit int) ([]PatientHit, error)
	SearchAppointments(ctx context.Context, q string, limit int) ([]AppointmentHit, error)
}
