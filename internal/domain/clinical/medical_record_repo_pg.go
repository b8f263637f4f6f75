package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

func (r *medicalRecordRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

func scanListedMedicalRecord(row pgx.Row) (*ListedMedicalRecord, error) {
	var (
		l        ListedMedicalRecord
		provider *string
	)
	err := row.Scan(&l.ID, &l.PatientID, &l.Diagnosis, &l.Date, &l.Notes, &provider, &l.CreatedAt,
		&l.Patient.Code, &l.Patient.Name)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		l.Provider = *provider
	}
	return &l, nil
}

func (r *medicalRecordRepoPG) Create(ctx context.Context, mr *MedicalRecord) error {
	mr.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_record (id, patient_id, diagnosis, date, notes, provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		mr.ID, mr.PatientID, mr.Diagnosis, mr.Date, mr.Notes, mr.Provider).Scan(&mr.CreatedAt)
	return db.Translate(err)
}

func (r *medicalRecordRepoPG) List(ctx context.Context, patientID *uuid.UUID) ([]*ListedMedicalRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT t.id, t.patient_id, t.diagnosis, t.date, t.notes, t.provider, t.created_at, `+patientRefCols+`
		FROM medical_record t `+patientJoin+` `+patientFilter+`
		ORDER BY t.date DESC, t.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanListedMedicalRecord)
}
