package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"

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

type Service struct {
	repo     Repository
	patients PatientLookup
	notifier Notifier
	tx       db.Transactor
	now      func() time.Time
}

func NewService(repo Repository, patients PatientLookup, notifier Notifier, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, notifier: notifier, tx: tx, now: time.Now}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (s *Service) List(ctx context.Context) ([]Row, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list pending actions", err)
	}
	rows := make([]Row, 0, len(items))
	for _, l := range items {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

// Create assigns a new action to actor and notifies them in the same
// transaction.
func (s *Service) Create(ctx context.Context, actor auth.Actor, in CreateInput) (*PendingAction, error) {
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}

	var errs errsx.Map
	if strings.TrimSpace(in.PatientID) == "" {
		errs.Set("patient_id", "patient_id is required")
	}
	if !validStatuses[in.Status] {
		errs.Set("status", "invalid status: "+in.Status)
	}
	if !validPriorities[in.Priority] {
		errs.Set("priority", "invalid priority: "+in.Priority)
	}
	if err := apperr.Invalid(errs); err != nil {
		return nil, err
	}

	var due *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, apperr.Validation("invalid date format for due_date")
		}
		due = &d
	}
	p, err := s.patients.ByCode(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	a := &PendingAction{
		PatientID:   &p.ID,
		ActionType:  optional(in.ActionType),
		Description: optional(in.Description),
		DueDate:     due,
		Status:      in.Status,
		Priority:    in.Priority,
	}
	var note *notification.Notification
	if !actor.IsZero() {
		a.AssignedUserID = &actor.UserID
		note = notification.ForUser(actor.UserID, notification.TypePendingAction,
			"New pending action: "+strings.TrimSpace(in.Description))
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return apperr.Persistence("create pending action", err)
		}
		if note == nil {
			return nil
		}
		return s.notifier.Record(ctx, note)
	})
	if err != nil {
		return nil, apperr.Persistence("create pending action", err)
	}
	if note != nil {
		s.notifier.Announce(ctx, note)
	}
	return a, nil
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Complete(ctx, id, s.now().UTC())
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound("pending action not found")
	}
	return apperr.Persistence("complete pending action", err)
}
