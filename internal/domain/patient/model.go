package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout       = "2006-01-02"
	registeredLayout = "Jan 02, 2006"
	codePrefix       = "PT-"
)

// Patient is a registered patient. Code is the human-facing identifier
// (PT-1000, PT-1001, ...) used by every API route.
type Patient struct {
	ID                 uuid.UUID
	Code               string
	FirstName          string
	LastName           string
	Email              *string
	Phone              *string
	DateOfBirth        time.Time
	Gender             *string
	BloodType          *string
	Allergies          *string
	CurrentMedications *string
	InsuranceProvider  *string
	PolicyNumber       *string
	EmergencyContact   *string
	InICU              bool
	OnVentilator       bool
	IsolationStatus    *string
	TelemedicineReady  bool
	IsActive           bool
	CreatedAt          time.Time
}

func (p *Patient) Name() string { return p.FirstName + " " + p.LastName }

// IsCode reports whether ref looks like a patient code rather than a name.
func IsCode(ref string) bool { return strings.HasPrefix(ref, codePrefix) }

// Age returns completed years between dob and today. A Feb 29 birthday is
// reached on Mar 1 in non-leap years.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// View is the JSON representation of a patient.
type View struct {
	ID                 string    `json:"id"`
	UUID               uuid.UUID `json:"uuid"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Name               string    `json:"name"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	DateOfBirth        string    `json:"date_of_birth"`
	Age                int       `json:"age"`
	Gender             *string   `json:"gender"`
	BloodType          *string   `json:"blood_type"`
	Allergies          *string   `json:"allergies"`
	CurrentMedications *string   `json:"current_medications"`
	InsuranceProvider  *string   `json:"insurance_provider"`
	PolicyNumber       *string   `json:"policy_number"`
	EmergencyContact   *string   `json:"emergency_contact"`
	InICU              bool      `json:"in_icu"`
	OnVentilator       bool      `json:"on_ventilator"`
	IsolationStatus    *string   `json:"isolation_status"`
	TelemedicineReady  bool      `json:"telemedicine_ready"`
	IsActive           bool      `json:"is_active"`
	Registered         string    `json:"registered"`
}

func (p *Patient) View(today time.Time) View {
	return View{
		ID:                 p.Code,
		UUID:               p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Name:               p.Name(),
		Email:              p.Email,
		Phone:              p.Phone,
		DateOfBirth:        p.DateOfBirth.Format(dateLayout),
		Age:                Age(p.DateOfBirth, today),
		Gender:             p.Gender,
		BloodType:          p.BloodType,
		Allergies:          p.Allergies,
		CurrentMedications: p.CurrentMedications,
		InsuranceProvider:  p.InsuranceProvider,
		PolicyNumber:       p.PolicyNumber,
		EmergencyContact:   p.EmergencyContact,
		InICU:              p.InICU,
		OnVentilator:       p.OnVentilator,
		IsolationStatus:    p.IsolationStatus,
		TelemedicineReady:  p.TelemedicineReady,
		IsActive:           p.IsActive,
		Registered:         p.CreatedAt.Format(registeredLayout),
	}
}

type AppointmentSummary struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Doctor string  `json:"doctor"`
	Status string  `json:"status"`
	Reason *string `json:"reason"`
}

type PrescriptionSummary struct {
	ID             uuid.UUID `json:"id"`
	MedicationName string    `json:"medication_name"`
	Dosage         *string   `json:"dosage"`
	StartDate      *string   `json:"start_date"`
	EndDate        *string   `json:"end_date"`
	Status         string    `json:"status"`
}

type LabSummary struct {
	ID           uuid.UUID `json:"id"`
	TestName     string    `json:"test_name"`
	ResultValue  *string   `json:"result_value"`
	Date         *string   `json:"date"`
	CriticalFlag bool      `json:"critical_flag"`
}

// Detail is a patient with their clinical history.
type Detail struct {
	View
	Conditions    []string              `json:"conditions"`
	Appointments  []AppointmentSummary  `json:"appointments"`
	Prescriptions []PrescriptionSummary `json:"prescriptions"`
	LabResults    []LabSummary          `json:"lab_results"`
}

type CreateInput struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	BloodType   *string `json:"blood_type"`
	Allergies   *string `json:"allergies"`
}
