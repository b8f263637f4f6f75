package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// FirstActive returns the earliest-created active user with role, or
	// with any role when role is empty.
	FirstActive(ctx context.Context, role string) (*User, error)
	// ListDoctors returns active doctors with the number of distinct
	// patients they have appointments with.
	ListDoctors(ctx context.Context) ([]*DoctorSummary, error)
}
