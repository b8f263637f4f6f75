package clinical

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/internal/domain/notification"
	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

func (s *Service) ListPrescriptions(ctx context.Context, patientCode string) ([]PrescriptionRow, error) {
	id, ok, err := s.filterPatient(ctx, patientCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []PrescriptionRow{}, nil
	}
	items, err := s.rx.List(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("list prescriptions", err)
	}
	rows := make([]PrescriptionRow, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

// CreatePrescription records a prescription written by actor and notifies
// the patient in the same transaction.
func (s *Service) CreatePrescription(ctx context.Context, actor auth.Actor, in PrescriptionInput) (*Prescription, error) {
	if err := requireDoctor(actor); err != nil {
		return nil, err
	}
	var errs errsx.Map
	if strings.TrimSpace(in.PatientID) == "" {
		errs.Set("patient_id", "patient_id is required")
	}
	if strings.TrimSpace(in.MedicationName) == "" {
		errs.Set("medication_name", "medication_name is required")
	}
	if in.Status == "" {
		in.Status = RxActive
	}
	if !validPrescriptionStatuses[in.Status] {
		errs.Set("status", "invalid prescription status: "+in.Status)
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperr.Validation("end_date cannot be before start_date")
	}

	p, err := s.patients.ByCode(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	doctorID := actor.UserID
	rx := &Prescription{
		PatientID:             p.ID,
		MedicationName:        strings.TrimSpace(in.MedicationName),
		Dosage:                optional(in.Dosage),
		StartDate:             start,
		EndDate:               end,
		PrescribingDoctorID:   &doctorID,
		PrescribingDoctorName: actor.Username,
		Notes:                 optional(in.Notes),
		Status:                in.Status,
	}
	note := notification.ForPatient(p.ID, notification.TypePrescription, "New prescription for "+rx.MedicationName)

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.rx.Create(ctx, rx); err != nil {
			return apperr.Persistence("create prescription", err)
		}
		return s.notifier.Record(ctx, note)
	})
	if err != nil {
		return nil, apperr.Persistence("create prescription", err)
	}
	s.notifier.Announce(ctx, note)
	return rx, nil
}

// UpdatePrescription applies the fields present in in.
func (s *Service) UpdatePrescription(ctx context.Context, id uuid.UUID, in PrescriptionUpdate) (*Prescription, error) {
	var out *Prescription
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		rx, err := s.rx.GetByID(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return errPrescriptionNotFound
		}
		if err != nil {
			return apperr.Persistence("get prescription", err)
		}

		if in.MedicationName != nil {
			name := strings.TrimSpace(*in.MedicationName)
			if name == "" {
				return apperr.Validation("medication_name cannot be empty")
			}
			rx.MedicationName = name
		}
		if in.Dosage != nil {
			rx.Dosage = optional(*in.Dosage)
		}
		if in.Notes != nil {
			rx.Notes = optional(*in.Notes)
		}
		if in.Status != nil {
			if !validPrescriptionStatuses[*in.Status] {
				return apperr.Validation("invalid prescription status: %s", *in.Status)
			}
			rx.Status = *in.Status
		}
		if in.StartDate != nil {
			if rx.StartDate, err = parseDate("start_date", *in.StartDate); err != nil {
				return err
			}
		}
		if in.EndDate != nil {
			if rx.EndDate, err = parseDate("end_date", *in.EndDate); err != nil {
				return err
			}
		}
		if rx.StartDate != nil && rx.EndDate != nil && rx.EndDate.Before(*rx.StartDate) {
			return apperr.Validation("end_date cannot be before start_date")
		}

		if err := s.rx.Update(ctx, rx); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return errPrescriptionNotFound
			}
			return apperr.Persistence("update prescription", err)
		}
		out = rx
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("update prescription", err)
	}
	return out, nil
}
