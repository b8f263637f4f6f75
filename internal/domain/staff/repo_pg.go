package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/hms/internal/platform/db"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const userCols = `id, username, email, password_hash, role, specialization, active, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.Specialization, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, db.Translate(err)
	}
	return &u, nil
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO app_user (id, username, email, password_hash, role, specialization, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.Specialization, u.Active).Scan(&u.CreatedAt)
	return db.Translate(err)
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE username = $1`, username))
}

func (r *userRepoPG) FirstActive(ctx context.Context, role string) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx, `
		SELECT `+userCols+` FROM app_user
		WHERE active AND ($1 = '' OR role = $1)
		ORDER BY created_at, id
		LIMIT 1`, role))
}

func (r *userRepoPG) ListDoctors(ctx context.Context) ([]*DoctorSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT u.id, u.username, u.specialization, COUNT(DISTINCT a.patient_id)
		FROM app_user u
		LEFT JOIN appointment a ON a.doctor_id = u.id
		WHERE u.role = 'doctor' AND u.active
		GROUP BY u.id, u.username, u.specialization, u.created_at
		ORDER BY u.created_at, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DoctorSummary
	for rows.Next() {
		var (
			d         DoctorSummary
			username  string
			specialty *string
		)
		if err := rows.Scan(&d.ID, &username, &specialty, &d.Patients); err != nil {
			return nil, err
		}
		d.Name = "Dr. " + username
		d.Specialty = defaultSpecialty
		if specialty != nil && *specialty != "" {
			d.Specialty = *specialty
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}
