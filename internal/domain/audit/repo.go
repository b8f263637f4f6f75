package audit

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*Log, error)
}
