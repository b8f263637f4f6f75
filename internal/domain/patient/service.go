package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hengadev/errsx"

	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

var errPatientNotFound = apperr.NotFound("patient not found")

func (s *Service) List(ctx context.Context) ([]View, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list patients", err)
	}
	today := s.now()
	views := make([]View, 0, len(items))
	for _, p := range items {
		views = append(views, p.View(today))
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	var errs errsx.Map
	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"date_of_birth", in.DateOfBirth},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Set(r.field, r.field+" is required")
		}
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}

	dob, err := time.Parse(dateLayout, in.DateOfBirth)
	if err != nil {
		return nil, apperr.Validation("invalid date format for date_of_birth")
	}
	if dob.After(s.now()) {
		return nil, apperr.Validation("date_of_birth cannot be in the future")
	}

	p := &Patient{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       &in.Email,
		Phone:       &in.Phone,
		DateOfBirth: dob,
		Gender:      in.Gender,
		BloodType:   in.BloodType,
		Allergies:   in.Allergies,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Persistence("create patient", err)
	}
	v := p.View(s.now())
	return &v, nil
}

// ByCode returns the patient with code.
func (s *Service) ByCode(ctx context.Context, code string) (*Patient, error) {
	p, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errPatientNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("get patient", err)
	}
	return p, nil
}

// Resolve finds a patient by code when ref starts with PT-, otherwise by
// full name.
func (s *Service) Resolve(ctx context.Context, ref string) (*Patient, error) {
	if IsCode(ref) {
		return s.ByCode(ctx, ref)
	}
	if strings.TrimSpace(ref) == "" {
		return nil, errPatientNotFound
	}
	p, err := s.repo.GetByName(ctx, ref)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errPatientNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("get patient", err)
	}
	return p, nil
}

func (s *Service) Detail(ctx context.Context, code string) (*Detail, error) {
	p, err := s.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	d := &Detail{View: p.View(s.now())}

	if d.Conditions, err = s.repo.Conditions(ctx, p.ID); err != nil {
		return nil, apperr.Persistence("list conditions", err)
	}
	if d.Appointments, err = s.repo.Appointments(ctx, p.ID); err != nil {
		return nil, apperr.Persistence("list patient appointments", err)
	}
	if d.Prescriptions, err = s.repo.Prescriptions(ctx, p.ID); err != nil {
		return nil, apperr.Persistence("list patient prescriptions", err)
	}
	if d.LabResults, err = s.repo.LabResults(ctx, p.ID); err != nil {
		return nil, apperr.Persistence("list patient lab results", err)
	}

	if d.Conditions == nil {
		d.Conditions = []string{}
	}
	if d.Appointments == nil {
		d.Appointments = []AppointmentSummary{}
	}
	if d.Prescriptions == nil {
		d.Prescriptions = []PrescriptionSummary{}
	}
	if d.LabResults == nil {
		d.LabResults = []LabSummary{}
	}
	return d, nil
}
