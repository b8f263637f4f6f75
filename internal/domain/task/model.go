package task

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusInProgress: true, StatusCompleted: true,
}

var validPriorities = map[string]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// PendingAction is a follow-up assigned to a staff user.
type PendingAction struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      *uuid.UUID `json:"-"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
	ActionType     *string    `json:"action_type"`
	Description    *string    `json:"description"`
	DueDate        *time.Time `json:"-"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Listed is a pending action with its patient, as returned by List.
type Listed struct {
	PendingAction
	PatientCode *string
	PatientName *string
}

type Row struct {
	*PendingAction
	PatientCode *string `json:"patient_id"`
	PatientName *string `json:"patient_name"`
	DueDate     *string `json:"due_date"`
}

func (l *Listed) Row() Row {
	r := Row{PendingAction: &l.PendingAction, PatientCode: l.PatientCode, PatientName: l.PatientName}
	if l.DueDate != nil {
		d := l.DueDate.Format(dateLayout)
		r.DueDate = &d
	}
	return r
}

type CreateInput struct {
	PatientID   string `json:"patient_id"`
	ActionType  string `json:"action_type"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}
