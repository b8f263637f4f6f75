package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type labResultRepoPG struct{ pool *pgxpool.Pool }

func NewLabResultRepoPG(pool *pgxpool.Pool) LabResultRepository {
	return &labResultRepoPG{pool: pool}
}

func (r *labResultRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const labCols = `t.id, t.patient_id, t.test_name, t.result_value, t.date, t.critical_flag,
	t.acknowledged, t.ordering_provider, t.notes, t.created_at`

func scanListedLabResult(row pgx.Row) (*ListedLabResult, error) {
	var (
		l        ListedLabResult
		provider *string
	)
	err := row.Scan(&l.ID, &l.PatientID, &l.TestName, &l.ResultValue, &l.Date, &l.CriticalFlag,
		&l.Acknowledged, &provider, &l.Notes, &l.CreatedAt, &l.Patient.Code, &l.Patient.Name)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		l.OrderingProvider = *provider
	}
	return &l, nil
}

func (r *labResultRepoPG) Create(ctx context.Context, lr *LabResult) error {
	lr.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO lab_result (id, patient_id, test_name, result_value, date, critical_flag,
			acknowledged, ordering_provider, notes)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)
		RETURNING created_at`,
		lr.ID, lr.PatientID, lr.TestName, lr.ResultValue, lr.Date, lr.CriticalFlag,
		lr.OrderingProvider, lr.Notes).Scan(&lr.CreatedAt)
	return db.Translate(err)
}

func (r *labResultRepoPG) List(ctx context.Context, patientID *uuid.UUID, criticalOnly bool) ([]*ListedLabResult, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+labCols+`, `+patientRefCols+`
		FROM lab_result t `+patientJoin+` `+patientFilter+`
			AND (NOT $2 OR t.critical_flag)
		ORDER BY t.date DESC, t.created_at DESC`, patientID, criticalOnly)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanListedLabResult)
}

func (r *labResultRepoPG) Acknowledge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE lab_result SET acknowledged = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
