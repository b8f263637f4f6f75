package program

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type programRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &programRepoPG{pool: pool} }

func (r *programRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const programSelect = `
	SELECT p.id, p.name, p.description, p.code, p.created_at, COUNT(e.id)
	FROM program p
	LEFT JOIN enrollment e ON e.program_id = p.id`

func scanProgram(row pgx.Row) (*Program, error) {
	var p Program
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Code, &p.CreatedAt, &p.ParticipantCount); err != nil {
		return nil, db.Translate(err)
	}
	return &p, nil
}

func (r *programRepoPG) List(ctx context.Context) ([]*Program, error) {
	rows, err := r.conn(ctx).Query(ctx, programSelect+`
		GROUP BY p.id
		ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *programRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Program, error) {
	return scanProgram(r.conn(ctx).QueryRow(ctx, programSelect+`
		WHERE p.id = $1
		GROUP BY p.id`, id))
}

func (r *programRepoPG) IsEnrolled(ctx context.Context, programID, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM enrollment WHERE program_id = $1 AND patient_id = $2)`,
		programID, patientID).Scan(&exists)
	return exists, err
}

func (r *programRepoPG) Enroll(ctx context.Context, e *Enrollment) error {
	e.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO enrollment (id, program_id, patient_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING enrolled_at`,
		e.ID, e.ProgramID, e.PatientID, e.Status).Scan(&e.EnrolledAt)
	return db.Translate(err)
}
