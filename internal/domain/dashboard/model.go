package dashboard

import "time"

const (
	defaultHeartRate     = 72
	defaultOxygen        = 98
	defaultBloodPressure = "120/80"
	// No height or weight is stored, so BMI is a fixed figure.
	placeholderBMI = 24.2

	searchLimit     = 10
	conditionsLimit = 10
)

// Capacities are the bed and device totals reported next to occupancy.
type Capacities struct {
	ICU         int
	Ventilators int
	Isolation   int
}

// Counts is the raw aggregate row behind Stats.
type Counts struct {
	TotalPatients         int
	TodaysAppointments    int
	PendingPrescriptions  int
	CriticalLabs          int
	AvgHeartRate          *float64
	AvgOxygen             *float64
	AvgSystolic           *float64
	AvgDiastolic          *float64
	InICU                 int
	OnVentilator          int
	InIsolation           int
	TelemedicineEligible  int
	TelemedicineScheduled int
	TelemedicineCompleted int
}

type Stats struct {
	PatientStats   PatientStats   `json:"patient_stats"`
	HealthMetrics  HealthMetrics  `json:"health_metrics"`
	ResourceStatus ResourceStatus `json:"resource_status"`
	Telemedicine   Telemedicine   `json:"telemedicine"`
}

type PatientStats struct {
	Total                int `json:"total"`
	TodaysAppointments   int `json:"todays_appointments"`
	PendingPrescriptions int `json:"pending_prescriptions"`
	CriticalLabs         int `json:"critical_labs"`
}

type HealthMetrics struct {
	HeartRate     int     `json:"heart_rate"`
	BloodPressure string  `json:"blood_pressure"`
	Oxygen        int     `json:"oxygen"`
	BMI           float64 `json:"bmi"`
}

type Occupancy struct {
	Occupied int `json:"occupied"`
	Total    int `json:"total"`
}

type DeviceUsage struct {
	InUse int `json:"in_use"`
	Total int `json:"total"`
}

type ResourceStatus struct {
	ICU           Occupancy   `json:"icu"`
	Ventilators   DeviceUsage `json:"ventilators"`
	IsolationBeds Occupancy   `json:"isolation_beds"`
}

type Telemedicine struct {
	Eligible  int `json:"eligible"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
}

// -- Analytics --

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
}

type PatientAnalytics struct {
	MonthlyRegistrations []MonthlyCount   `json:"monthly_registrations"`
	AppointmentStatuses  []StatusCount    `json:"appointment_statuses"`
	CommonConditions     []ConditionCount `json:"common_conditions"`
}

// -- Search --

const (
	SearchAll          = "all"
	SearchPatients     = "patients"
	SearchAppointments = "appointments"
)

type PatientHit struct {
	Code        string
	Name        string
	DateOfBirth time.Time
	Gender      *string
}

type AppointmentHit struct {
	Number      int64
	PatientName string
	Date        time.Time
	Start       string
	Reason      *string
}

// SearchResult is one entry of a mixed search response.
type SearchResult struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details"`
}
