package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAppointment   = "appointment"
	TypePrescription  = "prescription"
	TypeLabResult     = "lab_result"
	TypePendingAction = "pending_action"
)

// Notification is addressed to a patient, a staff user, or both.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	Timestamp time.Time  `json:"timestamp"`
}

// ForPatient builds a patient-addressed notification.
func ForPatient(patientID uuid.UUID, typ, message string) *Notification {
	return &Notification{PatientID: &patientID, Type: typ, Message: message}
}

// ForUser builds a staff-addressed notification.
func ForUser(userID uuid.UUID, typ, message string) *Notification {
	return &Notification{UserID: &userID, Type: typ, Message: message}
}
