package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &medicationRepoPG{pool: pool} }

func (r *medicationRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const medicationCols = `id, name, quantity, low_stock_threshold, category, created_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	if err := row.Scan(&m.ID, &m.Name, &m.Quantity, &m.LowStockThreshold, &m.Category, &m.CreatedAt); err != nil {
		return nil, db.Translate(err)
	}
	return &m, nil
}

func (r *medicationRepoPG) List(ctx context.Context) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medicationCols+` FROM medication ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *medicationRepoPG) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) (*Medication, error) {
	return scanMedication(r.conn(ctx).QueryRow(ctx, `
		UPDATE medication SET quantity = $2 WHERE id = $1
		RETURNING `+medicationCols, id, quantity))
}
