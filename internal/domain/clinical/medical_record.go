package clinical

import (
	"context"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/pkg/apperr"
)

func (s *Service) ListMedicalRecords(ctx context.Context, patientCode string) ([]MedicalRecordRow, error) {
	id, ok, err := s.filterPatient(ctx, patientCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []MedicalRecordRow{}, nil
	}
	items, err := s.records.List(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("list medical records", err)
	}
	rows := make([]MedicalRecordRow, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

func (s *Service) CreateMedicalRecord(ctx context.Context, actor auth.Actor, in MedicalRecordInput) (*MedicalRecord, error) {
	if err := requireDoctor(actor); err != nil {
		return nil, err
	}
	var errs errsx.Map
	if strings.TrimSpace(in.PatientID) == "" {
		errs.Set("patient_id", "patient_id is required")
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		errs.Set("diagnosis", "diagnosis is required")
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

	mr := &MedicalRecord{
		PatientID: p.ID,
		Diagnosis: strings.TrimSpace(in.Diagnosis),
		Date:      date,
		Notes:     optional(in.Notes),
		Provider:  actor.Username,
	}
	if err := s.records.Create(ctx, mr); err != nil {
		return nil, apperr.Persistence("create medical record", err)
	}
	return mr, nil
}
