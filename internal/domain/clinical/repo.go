package clinical

import (
	"context"

	"github.com/google/uuid"
)

// List methods take an optional patient filter; nil lists every patient.

type PrescriptionRepository interface {
	Create(ctx context.Context, rx *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, rx *Prescription) error
	List(ctx context.Context, patientID *uuid.UUID) ([]*ListedPrescription, error)
}

type LabResultRepository interface {
	Create(ctx context.Context, lr *LabResult) error
	List(ctx context.Context, patientID *uuid.UUID, criticalOnly bool) ([]*ListedLabResult, error)
	// Acknowledge returns db.ErrNotFound when no lab result has id.
	Acknowledge(ctx context.Context, id uuid.UUID) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, mr *MedicalRecord) error
	List(ctx context.Context, patientID *uuid.UUID) ([]*ListedMedicalRecord, error)
}

type VitalSignRepository interface {
	Create(ctx context.Context, vs *VitalSign) error
	List(ctx context.Context, patientID *uuid.UUID) ([]*ListedVitalSign, error)
}
