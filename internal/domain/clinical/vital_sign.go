package clinical

import (
	"context"
	"strings"
	"time"

	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/pkg/apperr"
)

func (s *Service) ListVitalSigns(ctx context.Context, patientCode string) ([]VitalSignRow, error) {
	id, ok, err := s.filterPatient(ctx, patientCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []VitalSignRow{}, nil
	}
	items, err := s.vitals.List(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("list vital signs", err)
	}
	rows := make([]VitalSignRow, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

func (s *Service) CreateVitalSign(ctx context.Context, in VitalSignInput) (*VitalSign, error) {
	var errs errsx.Map
	if strings.TrimSpace(in.PatientID) == "" {
		errs.Set("patient_id", "patient_id is required")
	}
	if in.HeartRate != nil && *in.HeartRate <= 0 {
		errs.Set("heart_rate", "heart_rate must be positive")
	}
	if in.OxygenSaturation != nil && (*in.OxygenSaturation < 0 || *in.OxygenSaturation > 100) {
		errs.Set("oxygen_saturation", "oxygen_saturation must be between 0 and 100")
	}
	if in.BloodPressure != nil && !bloodPressurePattern.MatchString(*in.BloodPressure) {
		errs.Set("blood_pressure", "blood_pressure must look like 120/80")
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}

	ts := s.now().UTC()
	if in.Timestamp != "" {
		t, err := time.Parse(timestampLayout, in.Timestamp)
		if err != nil {
			return nil, apperr.Validation("invalid timestamp format, expected YYYY-MM-DDTHH:MM:SS")
		}
		ts = t
	}
	p, err := s.patients.ByCode(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	vs := &VitalSign{
		PatientID:        p.ID,
		HeartRate:        in.HeartRate,
		BloodPressure:    in.BloodPressure,
		OxygenSaturation: in.OxygenSaturation,
		Temperature:      in.Temperature,
		Timestamp:        ts,
	}
	if err := s.vitals.Create(ctx, vs); err != nil {
		return nil, apperr.Persistence("create vital sign", err)
	}
	return vs, nil
}
