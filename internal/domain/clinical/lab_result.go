package clinical

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/internal/domain/notification"
	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

func (s *Service) ListLabResults(ctx context.Context, patientCode string, criticalOnly bool) ([]LabResultRow, error) {
	id, ok, err := s.filterPatient(ctx, patientCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []LabResultRow{}, nil
	}
	items, err := s.labs.List(ctx, id, criticalOnly)
	if err != nil {
		return nil, apperr.Persistence("list lab results", err)
	}
	rows := make([]LabResultRow, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

// CreateLabResult records a result ordered by actor. A critical result
// notifies the patient in the same transaction.
func (s *Service) CreateLabResult(ctx context.Context, actor auth.Actor, in LabResultInput) (*LabResult, error) {
	if err := requireDoctor(actor); err != nil {
		return nil, err
	}
	var errs errsx.Map
	if strings.TrimSpace(in.PatientID) == "" {
		errs.Set("patient_id", "patient_id is required")
	}
	if strings.TrimSpace(in.TestName) == "" {
		errs.Set("test_name", "test_name is required")
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.ByCode(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	lr := &LabResult{
		PatientID:        p.ID,
		TestName:         strings.TrimSpace(in.TestName),
		ResultValue:      optional(in.ResultValue),
		Date:             date,
		CriticalFlag:     in.CriticalFlag,
		OrderingProvider: actor.Username,
		Notes:            optional(in.Notes),
	}
	var note *notification.Notification
	if lr.CriticalFlag {
		note = notification.ForPatient(p.ID, notification.TypeLabResult,
			fmt.Sprintf("Critical lab result for %s: %s", lr.TestName, in.ResultValue))
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.labs.Create(ctx, lr); err != nil {
			return apperr.Persistence("create lab result", err)
		}
		if note == nil {
			return nil
		}
		return s.notifier.Record(ctx, note)
	})
	if err != nil {
		return nil, apperr.Persistence("create lab result", err)
	}
	if note != nil {
		s.notifier.Announce(ctx, note)
	}
	return lr, nil
}

func (s *Service) AcknowledgeLabResult(ctx context.Context, id uuid.UUID) error {
	err := s.labs.Acknowledge(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return errLabResultNotFound
	}
	return apperr.Persistence("acknowledge lab result", err)
}
