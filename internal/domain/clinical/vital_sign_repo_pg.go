package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type vitalSignRepoPG struct{ pool *pgxpool.Pool }

func NewVitalSignRepoPG(pool *pgxpool.Pool) VitalSignRepository {
	return &vitalSignRepoPG{pool: pool}
}

func (r *vitalSignRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

func scanListedVitalSign(row pgx.Row) (*ListedVitalSign, error) {
	var l ListedVitalSign
	err := row.Scan(&l.ID, &l.PatientID, &l.HeartRate, &l.BloodPressure, &l.OxygenSaturation,
		&l.Temperature, &l.Timestamp, &l.Patient.Code, &l.Patient.Name)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *vitalSignRepoPG) Create(ctx context.Context, vs *VitalSign) error {
	vs.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_sign (id, patient_id, heart_rate, blood_pressure, oxygen_saturation,
			temperature, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		vs.ID, vs.PatientID, vs.HeartRate, vs.BloodPressure, vs.OxygenSaturation,
		vs.Temperature, vs.Timestamp)
	return db.Translate(err)
}

func (r *vitalSignRepoPG) List(ctx context.Context, patientID *uuid.UUID) ([]*ListedVitalSign, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT t.id, t.patient_id, t.heart_rate, t.blood_pressure, t.oxygen_saturation,
			t.temperature, t.timestamp, `+patientRefCols+`
		FROM vital_sign t `+patientJoin+` `+patientFilter+`
		ORDER BY t.timestamp DESC`, patientID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanListedVitalSign)
}
