package clinical

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/domain/notification"
	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type PatientLookup interface {
	ByCode(ctx context.Context, code string) (*patient.Patient, error)
}

type Notifier interface {
	Record(ctx context.Context, n *notification.Notification) error
	Announce(ctx context.Context, notes ...*notification.Notification)
}

type Repos struct {
	Prescriptions  PrescriptionRepository
	LabResults     LabResultRepository
	MedicalRecords MedicalRecordRepository
	VitalSigns     VitalSignRepository
}

type Service struct {
	rx       PrescriptionRepository
	labs     LabResultRepository
	records  MedicalRecordRepository
	vitals   VitalSignRepository
	patients PatientLookup
	notifier Notifier
	tx       db.Transactor
	now      func() time.Time
}

func NewService(repos Repos, patients PatientLookup, notifier Notifier, tx db.Transactor) *Service {
	return &Service{
		rx:       repos.Prescriptions,
		labs:     repos.LabResults,
		records:  repos.MedicalRecords,
		vitals:   repos.VitalSigns,
		patients: patients,
		notifier: notifier,
		tx:       tx,
		now:      time.Now,
	}
}

var (
	errNoDoctor             = apperr.NotFound("no doctor available")
	errPrescriptionNotFound = apperr.NotFound("prescription not found")
	errLabResultNotFound    = apperr.NotFound("lab result not found")

	bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)
)

func (s *Service) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, apperr.Validation("invalid date format for %s", field)
	}
	return &d, nil
}

// dateOrToday parses v, defaulting to today when empty.
func (s *Service) dateOrToday(field, v string) (time.Time, error) {
	d, err := parseDate(field, v)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return s.today(), nil
	}
	return *d, nil
}

func requireDoctor(actor auth.Actor) error {
	if !actor.IsDoctor() {
		return errNoDoctor
	}
	return nil
}

// filterPatient maps an optional patient code to a repository filter. ok is
// false when the code names no patient, which lists as empty.
func (s *Service) filterPatient(ctx context.Context, code string) (id *uuid.UUID, ok bool, err error) {
	if code == "" {
		return nil, true, nil
	}
	p, err := s.patients.ByCode(ctx, code)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p.ID, true, nil
}
