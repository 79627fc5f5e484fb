package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medidesk/internal/apiclient"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

func samplePrescriptions(now time.Time) []model.Prescription {
	return []model.Prescription{
		{
			ID: "rx-1", PatientID: "p-1", Status: model.PrescriptionPending, UpdatedAt: now,
			Medicines: []model.Medicine{
				{ID: "m-1", Name: "Amoxicillin", Status: model.MedicinePending},
				{ID: "m-2", Name: "Ibuprofen", Status: model.MedicinePending},
				{ID: "m-3", Name: "Omeprazole", Status: model.MedicinePending},
			},
			LabReports: []model.LabReport{
				{ID: "lr-1", Name: "CBC", Status: model.LabReportPending},
				{ID: "lr-2", Name: "X-Ray", Status: model.LabReportPending},
			},
		},
		{
			ID: "rx-2", PatientID: "p-2", Status: model.PrescriptionCompleted, UpdatedAt: now.AddDate(0, 0, -3),
			Medicines:  []model.Medicine{{ID: "m-9", Status: model.MedicineDispensed}},
			LabReports: []model.LabReport{{ID: "lr-9", Status: model.LabReportCompleted}},
		},
	}
}

func TestDoctorDashboard_LoadIndependentResources(t *testing.T) {
	api := new(MockGateway)
	api.On("ListPatients", mock.Anything, 1, 5, "").Return(fail[[]model.Patient](http.StatusInternalServerError, "Failed to get patients"))
	api.On("ListPrescriptions", mock.Anything, 1, 10).Return(ok(samplePrescriptions(time.Now())))

	d := NewDoctorDashboard(api, newQueue(), newRecorder(), doctor, zerolog.Nop())
	d.Load(context.Background())

	v := d.Snapshot()
	assert.False(t, v.Patients.Loading)
	assert.Equal(t, "Failed to get patients", v.Patients.Error)
	assert.False(t, v.Prescriptions.Loading)
	assert.Empty(t, v.Prescriptions.Error)
	assert.Len(t, v.Prescriptions.Data, 2)
	assert.Equal(t, 1, v.PendingPrescriptions)
	assert.Equal(t, 2, v.PendingLabReports)
}

func TestDoctorDashboard_SearchIgnoresBlank(t *testing.T) {
	api := new(MockGateway)
	api.On("ListPatients", mock.Anything, 1, 5, "smith").Return(ok([]model.Patient{{ID: "p-1", Name: "Ann Smith"}}))
	d := NewDoctorDashboard(api, newQueue(), newRecorder(), doctor, zerolog.Nop())

	assert.False(t, d.Search(context.Background(), "   "))
	api.AssertNotCalled(t, "ListPatients", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.True(t, d.Search(context.Background(), " smith "))
	v := d.Snapshot()
	assert.Equal(t, "smith", v.Search)
	assert.Len(t, v.Patients.Data, 1)
}

func TestDoctorDashboard_UpdatePrescriptionStatus(t *testing.T) {
	now := time.Now()
	api := new(MockGateway)
	api.On("ListPatients", mock.Anything, 1, 5, "").Return(ok([]model.Patient{}))
	api.On("ListPrescriptions", mock.Anything, 1, 10).Return(ok(samplePrescriptions(now)))
	updated := samplePrescriptions(now)[0]
	updated.Status = model.PrescriptionInProgress
	api.On("UpdatePrescriptionStatus", mock.Anything, "rx-1", model.PrescriptionInProgress).Return(ok(updated))

	d := NewDoctorDashboard(api, newQueue(), newRecorder(), doctor, zerolog.Nop())
	d.Load(context.Background())

	require.NoError(t, d.UpdatePrescriptionStatus(context.Background(), "rx-1", model.PrescriptionInProgress))
	assert.Equal(t, model.PrescriptionInProgress, d.Snapshot().Prescriptions.Data[0].Status)

	err := d.UpdatePrescriptionStatus(context.Background(), "rx-1", "DONE")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func newLoadedLab(t *testing.T, api *MockGateway, notes *notify.Queue) *LabDashboard {
	t.Helper()
	api.On("ListPrescriptions", mock.Anything, 1, 20).Return(ok(samplePrescriptions(time.Now()))).Once()
	l := NewLabDashboard(api, notes, newRecorder(), labTech, zerolog.Nop())
	l.Load(context.Background())
	return l
}

func TestLabDashboard_LoadFiltersPending(t *testing.T) {
	l := newLoadedLab(t, new(MockGateway), newQueue())

	v := l.Snapshot()
	require.Len(t, v.Prescriptions.Data, 1)
	assert.Equal(t, "rx-1", v.Prescriptions.Data[0].ID)
	assert.Equal(t, 2, v.PendingCount)
}

func TestLabDashboard_UploadWithoutFileIsBlocked(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	l := newLoadedLab(t, api, notes)

	require.NoError(t, l.OpenUpload("rx-1", "lr-1"))
	require.NoError(t, l.SetNotes("fasting"))

	err := l.SubmitUpload(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrNoFileSelected)
	api.AssertNotCalled(t, "UploadLabReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NotNil(t, l.Snapshot().Upload)
}

func TestLabDashboard_UploadFlipsOnlyTargetReport(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	l := newLoadedLab(t, api, notes)
	uploadedAt := time.Now()
	api.On("UploadLabReport", mock.Anything, "rx-1", "lr-2", mock.MatchedBy(func(f apiclient.File) bool {
		return f.Name == "xray.png" && f.ContentType == "image/png"
	}), "left arm").Return(ok(model.LabReport{
		ID: "lr-2", Status: model.LabReportCompleted, ReportURL: "/files/xray.png", UploadedBy: "lab1", UploadedAt: &uploadedAt,
	}))

	require.NoError(t, l.OpenUpload("rx-1", "lr-2"))
	require.NoError(t, l.SetNotes("left arm"))
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, l.SetFile("xray.png", png))
	require.NoError(t, l.SubmitUpload(context.Background()))

	v := l.Snapshot()
	assert.Nil(t, v.Upload)
	reports := v.Prescriptions.Data[0].LabReports
	assert.Equal(t, model.LabReportPending, reports[0].Status)
	assert.Equal(t, model.LabReportCompleted, reports[1].Status)
	assert.Equal(t, "/files/xray.png", reports[1].ReportURL)
	assert.Equal(t, 1, v.PendingCount)
	assert.Equal(t, 1, v.CompletedToday)
	assert.Equal(t, []notify.Kind{notify.Success}, kinds(notes.Drain()))
}

func TestLabDashboard_UploadFailureKeepsModal(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	l := newLoadedLab(t, api, notes)
	api.On("UploadLabReport", mock.Anything, "rx-1", "lr-1", mock.Anything, "").Return(fail[model.LabReport](http.StatusRequestEntityTooLarge, "File too large"))

	require.NoError(t, l.OpenUpload("rx-1", "lr-1"))
	require.NoError(t, l.SetFile("cbc.pdf", []byte("%PDF-1.4")))
	err := l.SubmitUpload(context.Background())

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	v := l.Snapshot()
	require.NotNil(t, v.Upload)
	assert.Equal(t, "cbc.pdf", v.Upload.FileName)
	assert.Equal(t, "File too large", v.Upload.Error)
	assert.Equal(t, model.LabReportPending, v.Prescriptions.Data[0].LabReports[0].Status)
	assert.Equal(t, []notify.Kind{notify.Error}, kinds(notes.Drain()))
}

func TestLabDashboard_RejectsUnsupportedFile(t *testing.T) {
	l := newLoadedLab(t, new(MockGateway), newQueue())
	require.NoError(t, l.OpenUpload("rx-1", "lr-1"))

	assert.ErrorIs(t, l.SetFile("result.exe", []byte("MZ")), apperrors.ErrUnsupportedFile)
	assert.ErrorIs(t, l.OpenUpload("rx-2", "lr-9"), apperrors.ErrRowNotFound)
}

func newLoadedPharmacy(t *testing.T, api *MockGateway, notes *notify.Queue, policy MergePolicy) *PharmacyDashboard {
	t.Helper()
	api.On("ListPrescriptions", mock.Anything, 1, 20).Return(ok(samplePrescriptions(time.Now()))).Once()
	p := NewPharmacyDashboard(api, notes, newRecorder(), pharmist, policy, zerolog.Nop())
	p.Load(context.Background())
	return p
}

func selectAll(t *testing.T, p *PharmacyDashboard, ids ...string) {
	t.Helper()
	require.NoError(t, p.OpenDispense("rx-1"))
	for _, id := range ids {
		require.NoError(t, p.ToggleMedicine(id))
	}
}

func TestPharmacyDashboard_DispenseAllSucceed(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	p := newLoadedPharmacy(t, api, notes, MergeAllOrNothing)
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", mock.Anything, model.MedicineDispensed).Return(ok(model.Medicine{Status: model.MedicineDispensed}))

	selectAll(t, p, "m-1", "m-3")
	result, err := p.SubmitDispense(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"m-1", "m-3"}, result.Succeeded)
	assert.Empty(t, result.Failed)
	v := p.Snapshot()
	assert.Nil(t, v.Dispense)
	meds := v.Prescriptions.Data[0].Medicines
	assert.Equal(t, model.MedicineDispensed, meds[0].Status)
	assert.Equal(t, model.MedicinePending, meds[1].Status)
	assert.Equal(t, model.MedicineDispensed, meds[2].Status)
	assert.Equal(t, 1, v.PendingCount)
	assert.Equal(t, 2, v.DispensedToday)
	assert.Equal(t, []notify.Kind{notify.Success}, kinds(notes.Drain()))
}

func TestPharmacyDashboard_PartialFailureAllOrNothing(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	p := newLoadedPharmacy(t, api, notes, MergeAllOrNothing)
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", "m-1", model.MedicineDispensed).Return(ok(model.Medicine{}))
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", "m-2", model.MedicineDispensed).Return(fail[model.Medicine](http.StatusConflict, "Out of stock"))
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", "m-3", model.MedicineDispensed).Return(ok(model.Medicine{}))

	selectAll(t, p, "m-1", "m-2", "m-3")
	result, err := p.SubmitDispense(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrPartialDispense)
	assert.Equal(t, []string{"m-1", "m-3"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "m-2", result.Failed[0].MedicineID)
	assert.False(t, result.Merged)

	v := p.Snapshot()
	for _, m := range v.Prescriptions.Data[0].Medicines {
		assert.Equal(t, model.MedicinePending, m.Status)
	}
	assert.NotNil(t, v.Dispense)
	got := notes.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Kind)
	assert.Equal(t, "Failed to dispense some medicines", got[0].Message)
	api.AssertNumberOfCalls(t, "UpdateMedicineStatus", 3)
}

func TestPharmacyDashboard_PartialFailurePerItem(t *testing.T) {
	api := new(MockGateway)
	notes := newQueue()
	p := newLoadedPharmacy(t, api, notes, MergePerItem)
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", "m-1", model.MedicineDispensed).Return(ok(model.Medicine{}))
	api.On("UpdateMedicineStatus", mock.Anything, "rx-1", "m-2", model.MedicineDispensed).Return(fail[model.Medicine](http.StatusConflict, "Out of stock"))

	selectAll(t, p, "m-1", "m-2")
	result, err := p.SubmitDispense(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrPartialDispense)
	assert.True(t, result.Merged)
	v := p.Snapshot()
	meds := v.Prescriptions.Data[0].Medicines
	assert.Equal(t, model.MedicineDispensed, meds[0].Status)
	assert.Equal(t, model.MedicinePending, meds[1].Status)
	require.NotNil(t, v.Dispense)
	assert.Equal(t, map[string]bool{"m-2": true, "m-3": false}, v.Dispense.Selected)
	assert.Len(t, v.Dispense.Medicines, 2)
}

func TestPharmacyDashboard_SubmitGuards(t *testing.T) {
	api := new(MockGateway)
	p := newLoadedPharmacy(t, api, newQueue(), MergeAllOrNothing)

	_, err := p.SubmitDispense(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotOpen)

	require.NoError(t, p.OpenDispense("rx-1"))
	_, err = p.SubmitDispense(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoSelection)
	assert.ErrorIs(t, p.ToggleMedicine("m-9"), apperrors.ErrRowNotFound)
	api.AssertNotCalled(t, "UpdateMedicineStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInflight_RejectsSecondSubmit(t *testing.T) {
	var f inflight
	require.NoError(t, f.start())
	assert.ErrorIs(t, f.start(), apperrors.ErrSubmitInFlight)
	f.done()
	assert.NoError(t, f.start())
}
