package clinical

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubRow fills the doctor name column and leaves the rest untouched.
type stubRow struct {
	doctorName *string
	columns    int
}

func (r *stubRow) Scan(dest ...any) error {
	r.columns = len(dest)
	if len(dest) < 8 {
		return fmt.Errorf("expected at least 8 destinations, got %d", len(dest))
	}
	name, ok := dest[7].(**string)
	if !ok {
		return fmt.Errorf("doctor name destination is %T, want **string", dest[7])
	}
	*name = r.doctorName
	if id, ok := dest[0].(*uuid.UUID); ok {
		*id = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	}
	return nil
}

func TestRxDestMatchesColumns(t *testing.T) {
	var (
		rx   Prescription
		name *string
	)
	dest := rxDest(&rx, &name)
	if cols := len(strings.Split(rxCols, ",")); len(dest) != cols {
		t.Errorf("rxDest has %d destinations for %d columns", len(dest), cols)
	}
}

func TestScanPrescriptionDoctorName(t *testing.T) {
	house := "house"
	tests := []struct {
		name string
		db   *string
		want string
	}{
		{"stored name", &house, "house"},
		{"null name", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &stubRow{doctorName: tt.db}
			rx, err := scanPrescription(row)
			if err != nil {
				t.Fatalf("scanPrescription: %v", err)
			}
			if rx.PrescribingDoctorName != tt.want {
				t.Errorf("PrescribingDoctorName = %q, want %q", rx.PrescribingDoctorName, tt.want)
			}
			if rx.ID == uuid.Nil {
				t.Error("expected ID to be scanned")
			}
		})
	}
}

func TestScanListedPrescriptionAppendsPatient(t *testing.T) {
	row := &stubRow{}
	if _, err := scanListedPrescription(row); err != nil {
		t.Fatalf("scanListedPrescription: %v", err)
	}
	if want := len(strings.Split(rxCols, ",")) + 2; row.columns != want {
		t.Errorf("scanned %d destinations, want %d", row.columns, want)
	}
}
