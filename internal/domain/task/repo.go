package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *PendingAction) error
	// List orders by due date with undated actions last.
	List(ctx context.Context) ([]*Listed, error)
	// Complete returns db.ErrNotFound when no action has id.
	Complete(ctx context.Context, id uuid.UUID, at time.Time) error
}
