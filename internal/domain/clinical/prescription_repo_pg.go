package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const rxCols = `t.id, t.patient_id, t.medication_name, t.dosage, t.start_date, t.end_date,
	t.prescribing_doctor_id, t.prescribing_doctor_name, t.notes, t.status, t.created_at`

func rxDest(rx *Prescription, doctorName **string) []any {
	return []any{&rx.ID, &rx.PatientID, &rx.MedicationName, &rx.Dosage, &rx.StartDate, &rx.EndDate,
		&rx.PrescribingDoctorID, doctorName, &rx.Notes, &rx.Status, &rx.CreatedAt}
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var (
		rx   Prescription
		name *string
	)
	if err := row.Scan(rxDest(&rx, &name)...); err != nil {
		return nil, db.Translate(err)
	}
	if name != nil {
		rx.PrescribingDoctorName = *name
	}
	return &rx, nil
}

func scanListedPrescription(row pgx.Row) (*ListedPrescription, error) {
	var (
		l    ListedPrescription
		name *string
	)
	dest := append(rxDest(&l.Prescription, &name), &l.Patient.Code, &l.Patient.Name)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if name != nil {
		l.PrescribingDoctorName = *name
	}
	return &l, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, rx *Prescription) error {
	rx.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescription (id, patient_id, medication_name, dosage, start_date, end_date,
			prescribing_doctor_id, prescribing_doctor_name, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		rx.ID, rx.PatientID, rx.MedicationName, rx.Dosage, rx.StartDate, rx.EndDate,
		rx.PrescribingDoctorID, rx.PrescribingDoctorName, rx.Notes, rx.Status).Scan(&rx.CreatedAt)
	return db.Translate(err)
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+rxCols+` FROM prescription t WHERE t.id = $1`, id))
}

func (r *prescriptionRepoPG) Update(ctx context.Context, rx *Prescription) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescription SET medication_name = $2, dosage = $3, start_date = $4, end_date = $5,
			notes = $6, status = $7
		WHERE id = $1`,
		rx.ID, rx.MedicationName, rx.Dosage, rx.StartDate, rx.EndDate, rx.Notes, rx.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *prescriptionRepoPG) List(ctx context.Context, patientID *uuid.UUID) ([]*ListedPrescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+rxCols+`, `+patientRefCols+`
		FROM prescription t `+patientJoin+` `+patientFilter+`
		ORDER BY t.start_date DESC NULLS LAST, t.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanListedPrescription)
}
