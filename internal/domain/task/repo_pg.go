package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type pendingActionRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &pendingActionRepoPG{pool: pool} }

func (r *pendingActionRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

func (r *pendingActionRepoPG) Create(ctx context.Context, a *PendingAction) error {
	a.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pending_action (id, patient_id, assigned_user_id, action_type, description,
			due_date, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		a.ID, a.PatientID, a.AssignedUserID, a.ActionType, a.Description,
		a.DueDate, a.Status, a.Priority).Scan(&a.CreatedAt)
	return db.Translate(err)
}

func (r *pendingActionRepoPG) List(ctx context.Context) ([]*Listed, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.patient_id, a.assigned_user_id, a.action_type, a.description, a.due_date,
			a.status, a.priority, a.completed_at, a.created_at,
			p.patient_code, p.first_name || ' ' || p.last_name
		FROM pending_action a
		LEFT JOIN patient p ON p.id = a.patient_id
		ORDER BY a.due_date ASC NULLS LAST, a.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Listed
	for rows.Next() {
		var l Listed
		if err := rows.Scan(&l.ID, &l.PatientID, &l.AssignedUserID, &l.ActionType, &l.Description, &l.DueDate,
			&l.Status, &l.Priority, &l.CompletedAt, &l.CreatedAt,
			&l.PatientCode, &l.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &l)
	}
	return items, rows.Err()
}

func (r *pendingActionRepoPG) Complete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE pending_action SET status = $2, completed_at = $3 WHERE id = $1`,
		id, StatusCompleted, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
