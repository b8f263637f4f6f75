package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/internal/platform/events"
	"github.com/carepoint/hms/pkg/apperr"
)

type Service struct {
	repo   Repository
	pub    events.Publisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, pub events.Publisher, logger zerolog.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{repo: repo, pub: pub, logger: logger, now: time.Now}
}

// Record stores n using the transaction carried by ctx, if any.
func (s *Service) Record(ctx context.Context, n *Notification) error {
	if n.Message == "" {
		return apperr.Validation("notification message is required")
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return apperr.Persistence("create notification", err)
	}
	return nil
}

// Announce publishes notifications that were committed. Failures are logged.
func (s *Service) Announce(ctx context.Context, notes ...*Notification) {
	for _, n := range notes {
		if n == nil {
			continue
		}
		if err := s.pub.Publish(ctx, events.NotificationsQueue, n); err != nil {
			s.logger.Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("type", n.Type).
				Msg("publish notification")
		}
	}
}

func (s *Service) List(ctx context.Context) ([]*Notification, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list notifications", err)
	}
	if items == nil {
		items = []*Notification{}
	}
	return items, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound("notification not found")
	}
	return apperr.Persistence("mark notification read", err)
}
