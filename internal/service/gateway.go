package service

import (
	"context"

	"medidesk/internal/apiclient"
	"medidesk/internal/model"
)

// AuthGateway is the authentication surface of the backend.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) apiclient.Result[apiclient.LoginData]
	Logout(ctx context.Context) apiclient.Result[apiclient.Empty]
	CurrentUser(ctx context.Context) apiclient.Result[model.User]
}

// PatientGateway is the patient surface of the backend.
type PatientGateway interface {
	ListPatients(ctx context.Context, page, limit int, search string) apiclient.Result[[]model.Patient]
	GetPatient(ctx context.Context, id string) apiclient.Result[model.Patient]
	CreatePatient(ctx context.Context, p model.NewPatient) apiclient.Result[model.Patient]
	PatientHistory(ctx context.Context, id string) apiclient.Result[[]model.Prescription]
}

// PrescriptionGateway is the prescription surface of the backend.
type PrescriptionGateway interface {
	ListPrescriptions(ctx context.Context, page, limit int) apiclient.Result[[]model.Prescription]
	GetPrescription(ctx context.Context, id string) apiclient.Result[model.Prescription]
	CreatePrescription(ctx context.Context, p model.NewPrescription) apiclient.Result[model.Prescription]
	UpdatePrescriptionStatus(ctx context.Context, id string, status model.PrescriptionStatus) apiclient.Result[model.Prescription]
}

// LabGateway is the lab report surface of the backend.
type LabGateway interface {
	UploadLabReport(ctx context.Context, prescriptionID, reportID string, file apiclient.File, notes string) apiclient.Result[model.LabReport]
	UpdateLabReportStatus(ctx context.Context, prescriptionID, reportID string, status model.LabReportStatus) apiclient.Result[model.LabReport]
}

// PharmacyGateway is the dispensing surface of the backend.
type PharmacyGateway interface {
	UpdateMedicineStatus(ctx context.Context, prescriptionID, medicineID string, status model.MedicineStatus) apiclient.Result[model.Medicine]
}

// AdminGateway is the user administration surface of the backend.
type AdminGateway interface {
	ListUsers(ctx context.Context, page, limit int) apiclient.Result[[]model.User]
	CreateUser(ctx context.Context, u model.NewUser) apiclient.Result[model.User]
	UpdateUser(ctx context.Context, id string, patch model.UserUpdate) apiclient.Result[model.User]
	DeleteUser(ctx context.Context, id string) apiclient.Result[apiclient.Empty]
}

// Gateway is the whole backend surface. *apiclient.Client implements it.
type Gateway interface {
	AuthGateway
	PatientGateway
	PrescriptionGateway
	LabGateway
	PharmacyGateway
	AdminGateway
}

var _ Gateway = (*apiclient.Client)(nil)

// Resource is one independently fetched slice of a view.
type Resource[T any] struct {
	Data    T      `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (r *Resource[T]) start() {
	r.Loading = true
	r.Error = ""
}

func (r *Resource[T]) finish(res apiclient.Result[T]) {
	r.Loading = false
	if res.Success {
		r.Data = res.Data
		return
	}
	r.Error = res.Error
}
