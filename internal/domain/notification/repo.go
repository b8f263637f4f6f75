package notification

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context) ([]*Notification, error)
	// MarkRead returns db.ErrNotFound when no notification has id.
	MarkRead(ctx context.Context, id uuid.UUID) error
}
