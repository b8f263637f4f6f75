package program

import (
	"time"

	"github.com/google/uuid"
)

const EnrollmentActive = "active"

// Program is a care program patients can be enrolled in.
type Program struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Code             *string   `json:"code"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	ProgramID  uuid.UUID `json:"program_id"`
	PatientID  uuid.UUID `json:"patient_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type EnrollInput struct {
	PatientID string `json:"patient_id"`
}
