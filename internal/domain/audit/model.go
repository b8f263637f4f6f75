package audit

import (
	"time"

	"github.com/google/uuid"
)

// ListLimit caps how many entries List returns.
const ListLimit = 100

type Log struct {
	ID        uuid.UUID  `json:"id"`
	Action    string     `json:"action"`
	Details   *string    `json:"details"`
	PatientID *uuid.UUID `json:"patient_id"`
	UserID    *uuid.UUID `json:"user_id"`
	Timestamp time.Time  `json:"timestamp"`
}
