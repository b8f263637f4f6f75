package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create assigns ID, Number and CreatedAt.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetByNumber(ctx context.Context, number int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List orders by date then start time.
	List(ctx context.Context, f Filter) ([]*Listed, error)
}
