package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/domain/notification"
	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type PatientResolver interface {
	Resolve(ctx context.Context, ref string) (*patient.Patient, error)
}

type DoctorLookup interface {
	Doctor(ctx context.Context, id uuid.UUID) (auth.Actor, error)
}

type Notifier interface {
	Record(ctx context.Context, n *notification.Notification) error
	Announce(ctx context.Context, notes ...*notification.Notification)
}

type Service struct {
	repo     Repository
	patients PatientResolver
	doctors  DoctorLookup
	notifier Notifier
	tx       db.Transactor
	now      func() time.Time
}

func NewService(repo Repository, patients PatientResolver, doctors DoctorLookup, notifier Notifier, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors, notifier: notifier, tx: tx, now: time.Now}
}

var errAppointmentNotFound = apperr.NotFound("appointment not found")

func (s *Service) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q, expected YYYY-MM-DD", v)
	}
	return d, nil
}

func parseStart(v string) (TimeOfDay, error) {
	t, err := ParseTimeOfDay(v)
	if err != nil {
		return 0, apperr.Validation("%s", err.Error())
	}
	return t, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// Create books an appointment and notifies the patient in the same
// transaction. The doctor is doctor_id when given, otherwise the actor if
// the actor is a doctor.
func (s *Service) Create(ctx context.Context, actor auth.Actor, in CreateInput) (*Appointment, error) {
	p, err := s.patients.Resolve(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStart(in.Time)
	if err != nil {
		return nil, err
	}
	duration := DefaultDuration
	if in.Duration != nil {
		duration = *in.Duration
	}
	end, err := EndTime(start, duration)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = StatusScheduled
	}
	if !validStatuses[in.Status] {
		return nil, apperr.Validation("invalid appointment status: %s", in.Status)
	}

	doctor, err := s.pickDoctor(ctx, actor, in.DoctorID)
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		PatientID:    p.ID,
		DoctorID:     doctor.UserID,
		Date:         date,
		Start:        start,
		End:          &end,
		Status:       in.Status,
		Reason:       optional(in.Reason),
		Notes:        optional(in.Notes),
		Telemedicine: in.Telemedicine,
	}
	note := notification.ForPatient(p.ID, notification.TypeAppointment,
		fmt.Sprintf("New appointment scheduled with Dr. %s on %s at %s", doctor.Username, date.Format(dateLayout), start))

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return apperr.Persistence("create appointment", err)
		}
		return s.notifier.Record(ctx, note)
	})
	if err != nil {
		return nil, apperr.Persistence("create appointment", err)
	}
	s.notifier.Announce(ctx, note)
	return a, nil
}

func (s *Service) pickDoctor(ctx context.Context, actor auth.Actor, doctorID *uuid.UUID) (auth.Actor, error) {
	if doctorID != nil && *doctorID != uuid.Nil {
		return s.doctors.Doctor(ctx, *doctorID)
	}
	if actor.IsDoctor() {
		return actor, nil
	}
	return auth.Actor{}, apperr.NotFound("no doctor available")
}

// resolve finds an appointment by UUID or by display id (A0042 or 42).
func (s *Service) resolve(ctx context.Context, ref string) (*Appointment, error) {
	var (
		a   *Appointment
		err error
	)
	if id, perr := uuid.Parse(ref); perr == nil {
		a, err = s.repo.GetByID(ctx, id)
	} else if n, ok := ParseDisplayID(ref); ok {
		a, err = s.repo.GetByNumber(ctx, n)
	} else {
		return nil, errAppointmentNotFound
	}
	if errors.Is(err, db.ErrNotFound) {
		return nil, errAppointmentNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("get appointment", err)
	}
	return a, nil
}

// Update applies the fields present in in. A new time or duration
// recomputes the end time; a new time alone uses the default duration.
func (s *Service) Update(ctx context.Context, ref string, in UpdateInput) (*Appointment, error) {
	return s.mutate(ctx, ref, func(a *Appointment) error {
		if in.Status != nil {
			if !validStatuses[*in.Status] {
				return apperr.Validation("invalid appointment status: %s", *in.Status)
			}
			a.Status = *in.Status
		}
		if in.Notes != nil {
			a.Notes = in.Notes
		}
		if in.Reason != nil {
			a.Reason = in.Reason
		}
		if in.Date != nil {
			d, err := parseDate(*in.Date)
			if err != nil {
				return err
			}
			a.Date = d
		}
		if in.Time == nil && in.Duration == nil {
			return nil
		}

		duration := DefaultDuration
		if in.Duration != nil {
			duration = *in.Duration
		}
		if in.Time != nil {
			start, err := parseStart(*in.Time)
			if err != nil {
				return err
			}
			a.Start = start
		}
		end, err := EndTime(a.Start, duration)
		if err != nil {
			return err
		}
		a.End = &end
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, ref string, apply func(a *Appointment) error) (*Appointment, error) {
	var out *Appointment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.resolve(ctx, ref)
		if err != nil {
			return err
		}
		if err := apply(a); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, a); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return errAppointmentNotFound
			}
			return apperr.Persistence("update appointment", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("update appointment", err)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.resolve(ctx, ref)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, a.ID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return errAppointmentNotFound
			}
			return apperr.Persistence("delete appointment", err)
		}
		return nil
	})
	return apperr.Persistence("delete appointment", err)
}

// List returns appointments with status (or all) inside window: "today"
// (default), "upcoming" (today onwards) or "all".
func (s *Service) List(ctx context.Context, status, window string) ([]Row, error) {
	var f Filter
	switch status {
	case "", "all":
	default:
		if !validStatuses[status] {
			return nil, apperr.Validation("invalid appointment status: %s", status)
		}
		f.Status = status
	}

	today := s.today()
	switch window {
	case "", "today":
		f.From, f.To = &today, &today
	case "upcoming":
		f.From = &today
	case "all":
	default:
		return nil, apperr.Validation("invalid date filter: %s", window)
	}
	return s.rows(ctx, f)
}

// Today returns today's appointments of every status, earliest first.
func (s *Service) Today(ctx context.Context) ([]Row, error) {
	today := s.today()
	return s.rows(ctx, Filter{From: &today, To: &today})
}

func (s *Service) rows(ctx context.Context, f Filter) ([]Row, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Persistence("list appointments", err)
	}
	rows := make([]Row, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}
