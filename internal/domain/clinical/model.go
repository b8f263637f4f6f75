package clinical

import (
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

const (
	RxPending   = "pending"
	RxActive    = "active"
	RxCompleted = "completed"
	RxCancelled = "cancelled"
)

var validPrescriptionStatuses = map[string]bool{
	RxPending: true, RxActive: true, RxCompleted: true, RxCancelled: true,
}

// PatientRef is the denormalized patient shown next to clinical rows.
type PatientRef struct {
	Code string `json:"patient_id"`
	Name string `json:"patient_name"`
}

// Date is a calendar date that marshals as YYYY-MM-DD.
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{*t}
}

type Prescription struct {
	ID                    uuid.UUID  `json:"id"`
	PatientID             uuid.UUID  `json:"-"`
	MedicationName        string     `json:"medication_name"`
	Dosage                *string    `json:"dosage"`
	StartDate             *time.Time `json:"-"`
	EndDate               *time.Time `json:"-"`
	PrescribingDoctorID   *uuid.UUID `json:"prescribing_doctor_id"`
	PrescribingDoctorName string     `json:"prescribing_doctor"`
	Notes                 *string    `json:"notes"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
}

type LabResult struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"-"`
	TestName         string    `json:"test_name"`
	ResultValue      *string   `json:"result_value"`
	Date             time.Time `json:"-"`
	CriticalFlag     bool      `json:"critical_flag"`
	Acknowledged     bool      `json:"acknowledged"`
	OrderingProvider string    `json:"ordering_provider"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

type MedicalRecord struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"-"`
	Diagnosis string    `json:"diagnosis"`
	Date      time.Time `json:"-"`
	Notes     *string   `json:"notes"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

type VitalSign struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"-"`
	HeartRate        *int      `json:"heart_rate"`
	BloodPressure    *string   `json:"blood_pressure"`
	OxygenSaturation *float64  `json:"oxygen_saturation"`
	Temperature      *float64  `json:"temperature"`
	Timestamp        time.Time `json:"timestamp"`
}

// Row types embed the record with its patient and format dates.

type PrescriptionRow struct {
	PatientRef
	*Prescription
	StartDate *Date `json:"start_date"`
	EndDate   *Date `json:"end_date"`
}

type LabResultRow struct {
	PatientRef
	*LabResult
	Date Date `json:"date"`
}

type MedicalRecordRow struct {
	PatientRef
	*MedicalRecord
	Date Date `json:"date"`
}

type VitalSignRow struct {
	PatientRef
	*VitalSign
}

// Listed types pair a stored record with its patient as returned by the
// repositories.

type ListedPrescription struct {
	Prescription
	Patient PatientRef
}

func (l *ListedPrescription) Row() PrescriptionRow {
	return PrescriptionRow{
		PatientRef:   l.Patient,
		Prescription: &l.Prescription,
		StartDate:    datePtr(l.StartDate),
		EndDate:      datePtr(l.EndDate),
	}
}

type ListedLabResult struct {
	LabResult
	Patient PatientRef
}

func (l *ListedLabResult) Row() LabResultRow {
	return LabResultRow{PatientRef: l.Patient, LabResult: &l.LabResult, Date: Date{l.Date}}
}

type ListedMedicalRecord struct {
	MedicalRecord
	Patient PatientRef
}

func (l *ListedMedicalRecord) Row() MedicalRecordRow {
	return MedicalRecordRow{PatientRef: l.Patient, MedicalRecord: &l.MedicalRecord, Date: Date{l.Date}}
}

type ListedVitalSign struct {
	VitalSign
	Patient PatientRef
}

func (l *ListedVitalSign) Row() VitalSignRow {
	return VitalSignRow{PatientRef: l.Patient, VitalSign: &l.VitalSign}
}

// -- Inputs --

type PrescriptionInput struct {
	PatientID      string `json:"patient_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
}

type PrescriptionUpdate struct {
	MedicationName *string `json:"medication_name"`
	Dosage         *string `json:"dosage"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
}

type LabResultInput struct {
	PatientID    string `json:"patient_id"`
	TestName     string `json:"test_name"`
	ResultValue  string `json:"result_value"`
	Date         string `json:"date"`
	CriticalFlag bool   `json:"critical_flag"`
	Notes        string `json:"notes"`
}

type MedicalRecordInput struct {
	PatientID string `json:"patient_id"`
	Diagnosis string `json:"diagnosis"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

type VitalSignInput struct {
	PatientID        string   `json:"patient_id"`
	HeartRate        *int     `json:"heart_rate"`
	BloodPressure    *string  `json:"blood_pressure"`
	OxygenSaturation *float64 `json:"oxygen_saturation"`
	Temperature      *float64 `json:"temperature"`
	Timestamp        string   `json:"timestamp"`
}
