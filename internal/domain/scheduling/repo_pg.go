package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &appointmentRepoPG{pool: pool} }

func (r *appointmentRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const apptCols = `a.id, a.number, a.patient_id, a.doctor_id, a.date, a.start_time, a.end_time,
	a.status, a.reason, a.notes, a.telemedicine, a.created_at`

func scanAppointment(row pgx.Row, extra ...any) (*Appointment, error) {
	var (
		a          Appointment
		start, end pgtype.Time
	)
	dest := []any{&a.ID, &a.Number, &a.PatientID, &a.DoctorID, &a.Date, &start, &end,
		&a.Status, &a.Reason, &a.Notes, &a.Telemedicine, &a.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, db.Translate(err)
	}
	a.Start = TimeOfDayFromPG(start)
	if end.Valid {
		e := TimeOfDayFromPG(end)
		a.End = &e
	}
	return &a, nil
}

func endPG(a *Appointment) pgtype.Time {
	if a.End == nil {
		return pgtype.Time{}
	}
	return a.End.PG()
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, date, start_time, end_time,
			status, reason, notes, telemedicine)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING number, created_at`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Start.PG(), endPG(a),
		a.Status, a.Reason, a.Notes, a.Telemedicine).Scan(&a.Number, &a.CreatedAt)
	return db.Translate(err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointment a WHERE a.id = $1`, id))
}

func (r *appointmentRepoPG) GetByNumber(ctx context.Context, number int64) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointment a WHERE a.number = $1`, number))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET date = $2, start_time = $3, end_time = $4, status = $5,
			reason = $6, notes = $7
		WHERE id = $1`,
		a.ID, a.Date, a.Start.PG(), endPG(a), a.Status, a.Reason, a.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) List(ctx context.Context, f Filter) ([]*Listed, error) {
	query := `SELECT ` + apptCols + `, p.first_name || ' ' || p.last_name, u.username
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		JOIN app_user u ON u.id = a.doctor_id
		WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.Status != "" {
		query += fmt.Sprintf(` AND a.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.From != nil {
		query += fmt.Sprintf(` AND a.date >= $%d`, idx)
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		query += fmt.Sprintf(` AND a.date <= $%d`, idx)
		args = append(args, *f.To)
		idx++
	}
	query += ` ORDER BY a.date, a.start_time, a.number`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Listed
	for rows.Next() {
		var patientName, doctorName string
		a, err := scanAppointment(rows, &patientName, &doctorName)
		if err != nil {
			return nil, err
		}
		items = append(items, &Listed{Appointment: *a, PatientName: patientName, DoctorName: doctorName})
	}
	return items, rows.Err()
}
