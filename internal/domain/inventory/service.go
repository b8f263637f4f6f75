package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/pkg/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var errMedicationNotFound = apperr.NotFound("medication not found")

func (s *Service) List(ctx context.Context) ([]Item, error) {
	meds, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list medications", err)
	}
	items := make([]Item, 0, len(meds))
	for _, m := range meds {
		items = append(items, m.Item())
	}
	return items, nil
}

// UpdateStock sets the on-hand quantity of a medication.
func (s *Service) UpdateStock(ctx context.Context, in StockUpdate) (*Item, error) {
	if in.Quantity == nil {
		return nil, apperr.Validation("quantity is required")
	}
	if *in.Quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, errMedicationNotFound
	}
	m, err := s.repo.SetQuantity(ctx, id, *in.Quantity)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errMedicationNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("update medication stock", err)
	}
	item := m.Item()
	return &item, nil
}
