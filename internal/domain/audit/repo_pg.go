package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type auditRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &auditRepoPG{pool: pool} }

func (r *auditRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

func (r *auditRepoPG) Create(ctx context.Context, l *Log) error {
	l.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO audit_log (id, action, details, patient_id, user_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Action, l.Details, l.PatientID, l.UserID, l.Timestamp)
	return db.Translate(err)
}

func (r *auditRepoPG) Recent(ctx context.Context, limit int) ([]*Log, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, action, details, patient_id, user_id, timestamp
		FROM audit_log
		ORDER BY timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.Action, &l.Details, &l.PatientID, &l.UserID, &l.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, &l)
	}
	return items, rows.Err()
}
