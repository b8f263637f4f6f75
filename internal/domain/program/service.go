package program

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type PatientLookup interface {
	ByCode(ctx context.Context, code string) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientLookup
	tx       db.Transactor
}

func NewService(repo Repository, patients PatientLookup, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, tx: tx}
}

var (
	errProgramNotFound = apperr.NotFound("program not found")
	errAlreadyEnrolled = apperr.Duplicate("patient already enrolled")
)

func (s *Service) List(ctx context.Context) ([]*Program, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list programs", err)
	}
	if items == nil {
		items = []*Program{}
	}
	return items, nil
}

// Enroll adds the patient with patientCode to the program. A patient can be
// enrolled in a program at most once.
func (s *Service) Enroll(ctx context.Context, programID uuid.UUID, patientCode string) (*Enrollment, error) {
	if strings.TrimSpace(patientCode) == "" {
		return nil, apperr.Validation("patient_id is required")
	}
	var out *Enrollment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		prog, err := s.repo.GetByID(ctx, programID)
		if errors.Is(err, db.ErrNotFound) {
			return errProgramNotFound
		}
		if err != nil {
			return apperr.Persistence("get program", err)
		}
		p, err := s.patients.ByCode(ctx, patientCode)
		if err != nil {
			return err
		}

		enrolled, err := s.repo.IsEnrolled(ctx, prog.ID, p.ID)
		if err != nil {
			return apperr.Persistence("check enrollment", err)
		}
		if enrolled {
			return errAlreadyEnrolled
		}

		e := &Enrollment{ProgramID: prog.ID, PatientID: p.ID, Status: EnrollmentActive}
		if err := s.repo.Enroll(ctx, e); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return errAlreadyEnrolled
			}
			return apperr.Persistence("enroll patient", err)
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("enroll patient", err)
	}
	return out, nil
}
