package model

import "time"

// PrescriptionStatus is the overall status of a prescription.
type PrescriptionStatus string

const (
	PrescriptionPending    PrescriptionStatus = "PENDING"
	PrescriptionInProgress PrescriptionStatus = "IN_PROGRESS"
	PrescriptionCompleted  PrescriptionStatus = "COMPLETED"
)

// Valid reports whether s is a known prescription status.
func (s PrescriptionStatus) Valid() bool {
	switch s {
	case PrescriptionPending, PrescriptionInProgress, PrescriptionCompleted:
		return true
	}
	return false
}

// Badge returns the display badge for the status.
func (s PrescriptionStatus) Badge() Badge {
	switch s {
	case PrescriptionPending:
		return newBadge(VariantInfo, string(s))
	case PrescriptionInProgress:
		return newBadge(VariantWarning, string(s))
	case PrescriptionCompleted:
		return newBadge(VariantSuccess, string(s))
	}
	return newBadge(VariantSecondary, string(s))
}

// MedicineStatus is the dispensing status of a single medicine.
type MedicineStatus string

const (
	MedicinePending   MedicineStatus = "PENDING"
	MedicineDispensed MedicineStatus = "DISPENSED"
)

// Valid reports whether s is a known medicine status.
func (s MedicineStatus) Valid() bool {
	return s == MedicinePending || s == MedicineDispensed
}

// Badge returns the display badge for the status.
func (s MedicineStatus) Badge() Badge {
	switch s {
	case MedicinePending:
		return newBadge(VariantInfo, string(s))
	case MedicineDispensed:
		return newBadge(VariantSuccess, string(s))
	}
	return newBadge(VariantSecondary, string(s))
}

// LabReportStatus is the status of a single requested lab test.
type LabReportStatus string

const (
	LabReportPending   LabReportStatus = "PENDING"
	LabReportCompleted LabReportStatus = "COMPLETED"
)

// Valid reports whether s is a known lab report status.
func (s LabReportStatus) Valid() bool {
	return s == LabReportPending || s == LabReportCompleted
}

// Badge returns the display badge for the status.
func (s LabReportStatus) Badge() Badge {
	switch s {
	case LabReportPending:
		return newBadge(VariantInfo, string(s))
	case LabReportCompleted:
		return newBadge(VariantSuccess, string(s))
	}
	return newBadge(VariantSecondary, string(s))
}

// Medicine is a medicine entry owned by a prescription.
type Medicine struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Dosage    string         `json:"dosage"`
	Frequency string         `json:"frequency"`
	Duration  string         `json:"duration"`
	Notes     string         `json:"notes,omitempty"`
	Status    MedicineStatus `json:"status"`
}

// LabReport is a lab test slot owned by a prescription.
type LabReport struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Notes      string          `json:"notes,omitempty"`
	ReportURL  string          `json:"reportUrl,omitempty"`
	UploadedBy string          `json:"uploadedBy,omitempty"`
	UploadedAt *time.Time      `json:"uploadedAt,omitempty"`
	Status     LabReportStatus `json:"status"`
}

// Prescription is a clinical encounter record.
type Prescription struct {
	ID         string             `json:"id"`
	PatientID  string             `json:"patientId"`
	DoctorID   string             `json:"doctorId"`
	Diagnosis  string             `json:"diagnosis"`
	Symptoms   []string           `json:"symptoms"`
	Medicines  []Medicine         `json:"medicines"`
	LabReports []LabReport        `json:"labReports"`
	Status     PrescriptionStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewMedicine is a medicine row of a new prescription. Identifiers and
// status are assigned by the backend.
type NewMedicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

// NewLabReport is a lab test row of a new prescription.
type NewLabReport struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// NewPrescription is the payload for creating a prescription.
type NewPrescription struct {
	PatientID  string         `json:"patientId"`
	DoctorID   string         `json:"doctorId"`
	Diagnosis  string         `json:"diagnosis"`
	Symptoms   []string       `json:"symptoms"`
	Medicines  []NewMedicine  `json:"medicines"`
	LabReports []NewLabReport `json:"labReports"`
}

// HasPendingLabReports reports whether any lab report is still pending.
func (p Prescription) HasPendingLabReports() bool {
	for _, r := range p.LabReports {
		if r.Status == LabReportPending {
			return true
		}
	}
	return false
}

// HasPendingMedicines reports whether any medicine is still pending.
func (p Prescription) HasPendingMedicines() bool {
	for _, m := range p.Medicines {
		if m.Status == MedicinePending {
			return true
		}
	}
	return false
}

// PendingMedicines returns the medicines not yet dispensed, in order.
func (p Prescription) PendingMedicines() []Medicine {
	var out []Medicine
	for _, m := range p.Medicines {
		if m.Status == MedicinePending {
			out = append(out, m)
		}
	}
	return out
}

// PendingLabReports returns the lab reports not yet completed, in order.
func (p Prescription) PendingLabReports() []LabReport {
	var out []LabReport
	for _, r := range p.LabReports {
		if r.Status == LabReportPending {
			out = append(out, r)
		}
	}
	return out
}

// LabReport returns the lab report with the given id.
func (p Prescription) LabReport(id string) (LabReport, bool) {
	for _, r := range p.LabReports {
		if r.ID == id {
			return r, true
		}
	}
	return LabReport{}, false
}

// WithLabReport returns a copy of p in which the lab report with the same
// id as report is replaced. The receiver is left untouched.
func (p Prescription) WithLabReport(report LabReport) Prescription {
	reports := make([]LabReport, len(p.LabReports))
	copy(reports, p.LabReports)
	for i := range reports {
		if reports[i].ID == report.ID {
			reports[i] = report
		}
	}
	p.LabReports = reports
	return p
}

// WithMedicineStatus returns a copy of p in which every medicine whose id is
// in ids carries status. The receiver is left untouched.
func (p Prescription) WithMedicineStatus(ids []string, status MedicineStatus) Prescription {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	medicines := make([]Medicine, len(p.Medicines))
	copy(medicines, p.Medicines)
	for i := range medicines {
		if _, ok := set[medicines[i].ID]; ok {
			medicines[i].Status = status
		}
	}
	p.Medicines = medicines
	return p
}
