package inventory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Medication, error)
	// SetQuantity returns db.ErrNotFound when no medication has id.
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) (*Medication, error)
}
