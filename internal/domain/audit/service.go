package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/platform/middleware"
	"github.com/carepoint/hms/pkg/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Log, error) {
	items, err := s.repo.Recent(ctx, ListLimit)
	if err != nil {
		return nil, apperr.Persistence("list audit logs", err)
	}
	if items == nil {
		items = []*Log{}
	}
	return items, nil
}

// RecordAccess stores a request captured by the audit middleware.
func (s *Service) RecordAccess(ctx context.Context, e middleware.AuditEntry) error {
	details := fmt.Sprintf("%s %s -> %d", e.Method, e.Path, e.StatusCode)
	if e.RequestID != "" {
		details += " request=" + e.RequestID
	}
	if e.IPAddress != "" {
		details += " ip=" + e.IPAddress
	}
	l := &Log{Action: e.Action, Details: &details, Timestamp: e.Timestamp}
	if id, err := uuid.Parse(e.UserID); err == nil {
		l.UserID = &id
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

var _ middleware.AuditRecorder = (*Service)(nil)
