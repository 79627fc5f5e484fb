package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"medidesk/internal/apiclient"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

// MockGateway is a mock implementation of Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Login(ctx context.Context, username, password string) apiclient.Result[apiclient.LoginData] {
	return m.Called(ctx, username, password).Get(0).(apiclient.Result[apiclient.LoginData])
}

func (m *MockGateway) Logout(ctx context.Context) apiclient.Result[apiclient.Empty] {
	return m.Called(ctx).Get(0).(apiclient.Result[apiclient.Empty])
}

func (m *MockGateway) CurrentUser(ctx context.Context) apiclient.Result[model.User] {
	return m.Called(ctx).Get(0).(apiclient.Result[model.User])
}

func (m *MockGateway) ListPatients(ctx context.Context, page, limit int, search string) apiclient.Result[[]model.Patient] {
	return m.Called(ctx, page, limit, search).Get(0).(apiclient.Result[[]model.Patient])
}

func (m *MockGateway) GetPatient(ctx context.Context, id string) apiclient.Result[model.Patient] {
	return m.Called(ctx, id).Get(0).(apiclient.Result[model.Patient])
}

func (m *MockGateway) CreatePatient(ctx context.Context, p model.NewPatient) apiclient.Result[model.Patient] {
	return m.Called(ctx, p).Get(0).(apiclient.Result[model.Patient])
}

func (m *MockGateway) PatientHistory(ctx context.Context, id string) apiclient.Result[[]model.Prescription] {
	return m.Called(ctx, id).Get(0).(apiclient.Result[[]model.Prescription])
}

func (m *MockGateway) ListPrescriptions(ctx context.Context, page, limit int) apiclient.Result[[]model.Prescription] {
	return m.Called(ctx, page, limit).Get(0).(apiclient.Result[[]model.Prescription])
}

func (m *MockGateway) GetPrescription(ctx context.Context, id string) apiclient.Result[model.Prescription] {
	return m.Called(ctx, id).Get(0).(apiclient.Result[model.Prescription])
}

func (m *MockGateway) CreatePrescription(ctx context.Context, p model.NewPrescription) apiclient.Result[model.Prescription] {
	return m.Called(ctx, p).Get(0).(apiclient.Result[model.Prescription])
}

func (m *MockGateway) UpdatePrescriptionStatus(ctx context.Context, id string, status model.PrescriptionStatus) apiclient.Result[model.Prescription] {
	return m.Called(ctx, id, status).Get(0).(apiclient.Result[model.Prescription])
}

func (m *MockGateway) UploadLabReport(ctx context.Context, prescriptionID, reportID string, file apiclient.File, notes string) apiclient.Result[model.LabReport] {
	return m.Called(ctx, prescriptionID, reportID, file, notes).Get(0).(apiclient.Result[model.LabReport])
}

func (m *MockGateway) UpdateLabReportStatus(ctx context.Context, prescriptionID, reportID string, status model.LabReportStatus) apiclient.Result[model.LabReport] {
	return m.Called(ctx, prescriptionID, reportID, status).Get(0).(apiclient.Result[model.LabReport])
}

func (m *MockGateway) UpdateMedicineStatus(ctx context.Context, prescriptionID, medicineID string, status model.MedicineStatus) apiclient.Result[model.Medicine] {
	return m.Called(ctx, prescriptionID, medicineID, status).Get(0).(apiclient.Result[model.Medicine])
}

func (m *MockGateway) ListUsers(ctx context.Context, page, limit int) apiclient.Result[[]model.User] {
	return m.Called(ctx, page, limit).Get(0).(apiclient.Result[[]model.User])
}

func (m *MockGateway) CreateUser(ctx context.Context, u model.NewUser) apiclient.Result[model.User] {
	return m.Called(ctx, u).Get(0).(apiclient.Result[model.User])
}

func (m *MockGateway) UpdateUser(ctx context.Context, id string, patch model.UserUpdate) apiclient.Result[model.User] {
	return m.Called(ctx, id, patch).Get(0).(apiclient.Result[model.User])
}

func (m *MockGateway) DeleteUser(ctx context.Context, id string) apiclient.Result[apiclient.Empty] {
	return m.Called(ctx, id).Get(0).(apiclient.Result[apiclient.Empty])
}

// MockRecorder is a mock implementation of audit.Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, entry model.ActionLog) {
	m.Called(ctx, entry)
}

func (m *MockRecorder) Recent(ctx context.Context, limit int) ([]model.ActionLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActionLog), args.Error(1)
}

func newRecorder() *MockRecorder {
	r := new(MockRecorder)
	r.On("Record", mock.Anything, mock.Anything).Return()
	return r
}

func newQueue() *notify.Queue {
	return notify.New(100, zerolog.Nop())
}

func ok[T any](data T) apiclient.Result[T] {
	return apiclient.Result[T]{Success: true, Data: data, Status: 200}
}

func fail[T any](status int, msg string) apiclient.Result[T] {
	return apiclient.Result[T]{Error: msg, Status: status}
}

func kinds(ns []notify.Notification) []notify.Kind {
	out := make([]notify.Kind, len(ns))
	for i, n := range ns {
		out[i] = n.Kind
	}
	return out
}

var (
	doctor   = &model.User{ID: "u-doc", Username: "drgrey", Role: model.RoleDoctor}
	labTech  = &model.User{ID: "u-lab", Username: "lab1", Role: model.RoleLabStaff}
	pharmist = &model.User{ID: "u-ph", Username: "pharm1", Role: model.RolePharmacyStaff}
	admin    = &model.User{ID: "u-adm", Username: "admin", Role: model.RoleAdmin}
)
