package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type notificationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &notificationRepoPG{pool: pool} }

func (r *notificationRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const notificationCols = `id, patient_id, user_id, message, notification_type, read, timestamp`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	var typ *string
	if err := row.Scan(&n.ID, &n.PatientID, &n.UserID, &n.Message, &typ, &n.Read, &n.Timestamp); err != nil {
		return nil, err
	}
	if typ != nil {
		n.Type = *typ
	}
	return &n, nil
}

func (r *notificationRepoPG) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO notification (id, patient_id, user_id, message, notification_type, read, timestamp)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		RETURNING timestamp`,
		n.ID, n.PatientID, n.UserID, n.Message, n.Type, n.Timestamp).Scan(&n.Timestamp)
	return db.Translate(err)
}

func (r *notificationRepoPG) List(ctx context.Context) ([]*Notification, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+notificationCols+` FROM notification ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *notificationRepoPG) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE notification SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
