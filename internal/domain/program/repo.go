package program

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// List returns programs by name with their participant counts.
	List(ctx context.Context) ([]*Program, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Program, error)
	IsEnrolled(ctx context.Context, programID, patientID uuid.UUID) (bool, error)
	// Enroll returns db.ErrDuplicate when the patient is already enrolled.
	Enroll(ctx context.Context, e *Enrollment) error
}
