package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const patientCols = `id, patient_code, first_name, last_name, email, phone, date_of_birth,
	gender, blood_type, allergies, current_medications, insurance_provider, policy_number,
	emergency_contact, in_icu, on_ventilator, isolation_status, telemedicine_ready,
	is_active, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Code, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth,
		&p.Gender, &p.BloodType, &p.Allergies, &p.CurrentMedications, &p.InsuranceProvider, &p.PolicyNumber,
		&p.EmergencyContact, &p.InICU, &p.OnVentilator, &p.IsolationStatus, &p.TelemedicineReady,
		&p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, db.Translate(err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, patient_code, first_name, last_name, email, phone, date_of_birth,
			gender, blood_type, allergies, is_active)
		VALUES ($1, 'PT-' || nextval('patient_code_seq'), $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING patient_code, is_active, created_at`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth,
		p.Gender, p.BloodType, p.Allergies).Scan(&p.Code, &p.IsActive, &p.CreatedAt)
	return db.Translate(err)
}

func (r *patientRepoPG) GetByCode(ctx context.Context, code string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE patient_code = $1`, code))
}

func (r *patientRepoPG) GetByName(ctx context.Context, name string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE first_name || ' ' || last_name = $1
		ORDER BY created_at LIMIT 1`, name))
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at, patient_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Conditions(ctx context.Context, patientID uuid.UUID) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT DISTINCT diagnosis FROM medical_record WHERE patient_id = $1 ORDER BY diagnosis`, patientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *patientRepoPG) Appointments(ctx context.Context, patientID uuid.UUID) ([]AppointmentSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.number, to_char(a.date, 'YYYY-MM-DD'), to_char(a.start_time, 'HH24:MI'),
			u.username, a.status, a.reason
		FROM appointment a
		JOIN app_user u ON u.id = a.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.date DESC, a.start_time DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AppointmentSummary
	for rows.Next() {
		var (
			s      AppointmentSummary
			number int64
		)
		if err := rows.Scan(&number, &s.Date, &s.Time, &s.Doctor, &s.Status, &s.Reason); err != nil {
			return nil, err
		}
		s.ID = fmt.Sprintf("A%04d", number)
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Prescriptions(ctx context.Context, patientID uuid.UUID) ([]PrescriptionSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, medication_name, dosage, to_char(start_date, 'YYYY-MM-DD'),
			to_char(end_date, 'YYYY-MM-DD'), status
		FROM prescription WHERE patient_id = $1
		ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PrescriptionSummary
	for rows.Next() {
		var s PrescriptionSummary
		if err := rows.Scan(&s.ID, &s.MedicationName, &s.Dosage, &s.StartDate, &s.EndDate, &s.Status); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) LabResults(ctx context.Context, patientID uuid.UUID) ([]LabSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, test_name, result_value, to_char(date, 'YYYY-MM-DD'), critical_flag
		FROM lab_result WHERE patient_id = $1
		ORDER BY date DESC NULLS LAST, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LabSummary
	for rows.Next() {
		var s LabSummary
		if err := rows.Scan(&s.ID, &s.TestName, &s.ResultValue, &s.Date, &s.CriticalFlag); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
