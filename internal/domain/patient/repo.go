package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create assigns ID, Code and CreatedAt.
	Create(ctx context.Context, p *Patient) error
	GetByCode(ctx context.Context, code string) (*Patient, error)
	// GetByName matches "first last" exactly and returns the oldest match.
	GetByName(ctx context.Context, name string) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)

	Conditions(ctx context.Context, patientID uuid.UUID) ([]string, error)
	Appointments(ctx context.Context, patientID uuid.UUID) ([]AppointmentSummary, error)
	Prescriptions(ctx context.Context, patientID uuid.UUID) ([]PrescriptionSummary, error)
	LabResults(ctx context.Context, patientID uuid.UUID) ([]LabSummary, error)
}
