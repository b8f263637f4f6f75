package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/carepoint/hms/pkg/apperr"
)

const (
	dateLayout = "2006-01-02"

	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"

	DefaultDuration = 30
	DefaultReason   = "Checkup"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true, StatusNoShow: true,
}

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time in whole minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// PG encodes t for a TIME column.
func (t TimeOfDay) PG() pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}
}

// TimeOfDayFromPG decodes a TIME column, truncating to the minute.
func TimeOfDayFromPG(v pgtype.Time) TimeOfDay {
	return TimeOfDay(v.Microseconds / int64(time.Minute/time.Microsecond))
}

// EndTime adds duration minutes to start. Appointments may not run past
// midnight.
func EndTime(start TimeOfDay, duration int) (TimeOfDay, error) {
	if duration <= 0 {
		return 0, apperr.Validation("duration must be a positive number of minutes")
	}
	end := int(start) + duration
	if end >= minutesPerDay {
		return 0, apperr.Validation("appointment cannot extend past midnight")
	}
	return TimeOfDay(end), nil
}

// DisplayID formats the appointment number for display, e.g. A0042.
func DisplayID(number int64) string { return fmt.Sprintf("A%04d", number) }

// ParseDisplayID accepts "A0042" or "42".
func ParseDisplayID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "A"), 10, 64)
	return n, err == nil && n > 0
}

type Appointment struct {
	ID           uuid.UUID
	Number       int64
	PatientID    uuid.UUID
	DoctorID     uuid.UUID
	Date         time.Time
	Start        TimeOfDay
	End          *TimeOfDay
	Status       string
	Reason       *string
	Notes        *string
	Telemedicine bool
	CreatedAt    time.Time
}

// Duration is the length in minutes, or DefaultDuration when no end time
// is stored.
func (a *Appointment) Duration() int {
	if a.End == nil {
		return DefaultDuration
	}
	return int(*a.End - a.Start)
}

// Listed is an appointment joined with display names.
type Listed struct {
	Appointment
	PatientName string
	DoctorName  string
}

// Row is an appointment as shown on lists and the dashboard board.
type Row struct {
	ID           string    `json:"id"`
	UUID         uuid.UUID `json:"uuid"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Patient      string    `json:"patient"`
	Doctor       string    `json:"doctor"`
	Status       string    `json:"status"`
	Duration     int       `json:"duration"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes"`
	Telemedicine bool      `json:"telemedicine"`
}

func (l *Listed) Row() Row {
	r := Row{
		ID:           DisplayID(l.Number),
		UUID:         l.ID,
		Date:         l.Date.Format(dateLayout),
		Time:         l.Start.String(),
		Patient:      l.PatientName,
		Doctor:       l.DoctorName,
		Status:       l.Status,
		Duration:     l.Duration(),
		Reason:       DefaultReason,
		Telemedicine: l.Telemedicine,
	}
	if l.Reason != nil && *l.Reason != "" {
		r.Reason = *l.Reason
	}
	if l.Notes != nil {
		r.Notes = *l.Notes
	}
	return r
}

// Filter selects appointments. Zero values match everything.
type Filter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type CreateInput struct {
	PatientID    string     `json:"patient_id"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Duration     *int       `json:"duration"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	Notes        string     `json:"notes"`
	Telemedicine bool       `json:"telemedicine"`
	DoctorID     *uuid.UUID `json:"doctor_id"`
}

type UpdateInput struct {
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	Reason   *string `json:"reason"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *int    `json:"duration"`
}
