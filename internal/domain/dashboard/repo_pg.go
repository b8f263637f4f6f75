package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/domain/scheduling"
	"github.com/carepoint/hms/internal/platform/db"
)

type dashboardRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &dashboardRepoPG{pool: pool} }

func (r *dashboardRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const countsQuery = `
	WITH bp AS (
		SELECT split_part(blood_pressure, '/', 1)::int AS sys,
		       split_part(blood_pressure, '/', 2)::int AS dia
		FROM vital_sign
		WHERE blood_pressure ~ '^[0-9]{2,3}/[0-9]{2,3}$'
	)
	SELECT
		(SELECT COUNT(*) FROM patient),
		(SELECT COUNT(*) FROM appointment WHERE date = $1 AND status = 'scheduled'),
		(SELECT COUNT(*) FROM prescription WHERE status = 'pending'),
		(SELECT COUNT(*) FROM lab_result WHERE critical_flag AND NOT acknowledged),
		(SELECT AVG(heart_rate)::float8 FROM vital_sign),
		(SELECT AVG(oxygen_saturation)::float8 FROM vital_sign),
		(SELECT AVG(sys)::float8 FROM bp),
		(SELECT AVG(dia)::float8 FROM bp),
		(SELECT COUNT(*) FROM patient WHERE in_icu),
		(SELECT COUNT(*) FROM patient WHERE on_ventilator),
		(SELECT COUNT(*) FROM patient WHERE COALESCE(isolation_status, '') <> ''),
		(SELECT COUNT(*) FROM patient WHERE telemedicine_ready),
		(SELECT COUNT(*) FROM appointment WHERE telemedicine AND date = $1),
		(SELECT COUNT(*) FROM appointment WHERE telemedicine AND date = $1 AND status = 'completed')`

func (r *dashboardRepoPG) Counts(ctx context.Context, today time.Time) (*Counts, error) {
	var c Counts
	err := r.conn(ctx).QueryRow(ctx, countsQuery, today).Scan(
		&c.TotalPatients, &c.TodaysAppointments, &c.PendingPrescriptions, &c.CriticalLabs,
		&c.AvgHeartRate, &c.AvgOxygen, &c.AvgSystolic, &c.AvgDiastolic,
		&c.InICU, &c.OnVentilator, &c.InIsolation,
		&c.TelemedicineEligible, &c.TelemedicineScheduled, &c.TelemedicineCompleted)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *dashboardRepoPG) MonthlyRegistrations(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM patient
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MonthlyCount, error) {
		var m MonthlyCount
		err := row.Scan(&m.Month, &m.Count)
		return m, err
	})
}

func (r *dashboardRepoPG) AppointmentStatuses(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT status, COUNT(*) FROM appointment GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (StatusCount, error) {
		var s StatusCount
		err := row.Scan(&s.Status, &s.Count)
		return s, err
	})
}

func (r *dashboardRepoPG) CommonConditions(ctx context.Context, limit int) ([]ConditionCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT diagnosis, COUNT(*) AS n
		FROM medical_record
		GROUP BY diagnosis
		ORDER BY n DESC, diagnosis
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ConditionCount, error) {
		var c ConditionCount
		err := row.Scan(&c.Condition, &c.Count)
		return c, err
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string { return "%" + likeEscaper.Replace(q) + "%" }

func (r *dashboardRepoPG) SearchPatients(ctx context.Context, q string, limit int) ([]PatientHit, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT patient_code, first_name || ' ' || last_name, date_of_birth, gender
		FROM patient
		WHERE first_name || ' ' || last_name ILIKE $1 OR patient_code ILIKE $1
		ORDER BY created_at
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (PatientHit, error) {
		var h PatientHit
		err := row.Scan(&h.Code, &h.Name, &h.DateOfBirth, &h.Gender)
		return h, err
	})
}

func (r *dashboardRepoPG) SearchAppointments(ctx context.Context, q string, limit int) ([]AppointmentHit, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.number, p.first_name || ' ' || p.last_name, a.date, a.start_time, a.reason
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		WHERE p.first_name || ' ' || p.last_name ILIKE $1 OR a.reason ILIKE $1
		ORDER BY a.date, a.start_time
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (AppointmentHit, error) {
		var (
			h     AppointmentHit
			start pgtype.Time
		)
		if err := row.Scan(&h.Number, &h.PatientName, &h.Date, &start, &h.Reason); err != nil {
			return h, err
		}
		h.Start = scheduling.TimeOfDayFromPG(start).String()
		return h, nil
	})
}
