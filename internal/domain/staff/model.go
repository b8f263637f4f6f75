package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/carepoint/hms/internal/platform/auth"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   *string   `json:"-"`
	Role           string    `json:"role"`
	Specialization *string   `json:"specialization"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) Actor() auth.Actor {
	return auth.Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// DoctorSummary is one row of the dashboard doctor roster.
type DoctorSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Patients  int       `json:"patients"`
}

const defaultSpecialty = "General Medicine"

type LoginResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type CreateInput struct {
	Username       string
	Email          string
	Role           string
	Password       string
	Specialization string
}
