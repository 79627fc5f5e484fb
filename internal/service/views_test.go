package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medidesk/internal/model"
)

func TestBuildTimeline(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	history := []model.Prescription{
		{ID: "old", Status: model.PrescriptionCompleted, CreatedAt: base},
		{
			ID: "new", Status: model.PrescriptionInProgress, CreatedAt: base.Add(48 * time.Hour),
			Medicines:  []model.Medicine{{ID: "m-1", Status: model.MedicineDispensed}},
			LabReports: []model.LabReport{{ID: "lr-1", Status: model.LabReportPending}},
		},
	}

	entries := BuildTimeline(history)

	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "2024-03-03 09:30", entries[0].CreatedAt)
	assert.Equal(t, model.VariantWarning, entries[0].Status.Variant)
	assert.Equal(t, "IN PROGRESS", entries[0].Status.Label)
	assert.Equal(t, model.VariantSuccess, entries[0].Medicines[0].Badge.Variant)
	assert.Equal(t, model.VariantInfo, entries[0].LabReports[0].Badge.Variant)
	assert.Equal(t, "old", entries[1].ID)
	assert.Equal(t, "old", history[0].ID)
}

func TestLoadTimeline(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := new(MockGateway)
		api.On("GetPatient", mock.Anything, "p-1").Return(ok(model.Patient{ID: "p-1", Name: "Ann Smith"}))
		api.On("PatientHistory", mock.Anything, "p-1").Return(ok([]model.Prescription{{ID: "rx-1"}}))

		v, err := LoadTimeline(context.Background(), api, "p-1")

		require.NoError(t, err)
		assert.Equal(t, "Ann Smith", v.Patient.Name)
		assert.Len(t, v.Entries, 1)
	})

	t.Run("missing patient", func(t *testing.T) {
		api := new(MockGateway)
		api.On("GetPatient", mock.Anything, "p-x").Return(fail[model.Patient](http.StatusNotFound, "Patient not found"))
		api.On("PatientHistory", mock.Anything, "p-x").Return(ok([]model.Prescription{}))

		_, err := LoadTimeline(context.Background(), api, "p-x")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Patient not found")
	})
}

func TestNavItems(t *testing.T) {
	labels := func(items []NavItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Label
		}
		return out
	}

	tests := []struct {
		role model.Role
		want []string
	}{
		{model.RoleDoctor, []string{"Dashboard", "Patients", "Prescriptions", "Schedule"}},
		{model.RoleLabStaff, []string{"Dashboard", "Lab Reports"}},
		{model.RolePharmacyStaff, []string{"Dashboard", "Pharmacy"}},
		{model.RoleAdmin, []string{"Dashboard", "Patients", "Schedule", "Admin"}},
		{"JANITOR", []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, labels(NavItems(tt.role)))
		})
	}
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/dashboard", HomePath(model.RoleDoctor))
	assert.Equal(t, "/lab-reports", HomePath(model.RoleLabStaff))
	assert.Equal(t, "/pharmacy", HomePath(model.RolePharmacyStaff))
	assert.Equal(t, "/admin", HomePath(model.RoleAdmin))
}

func TestWorkspace_ViewsFollowUser(t *testing.T) {
	w := NewWorkspace(new(MockGateway), newQueue(), newRecorder(), NewValidator(), MergeAllOrNothing, zerolog.Nop())

	first := w.For(*doctor)
	assert.Same(t, first, w.For(*doctor))

	draft := first.Draft("p-1")
	assert.Same(t, draft, first.Draft("p-1"))
	assert.NotSame(t, draft, first.Draft("p-2"))
	assert.Equal(t, "p-2", first.CurrentDraft().PatientID())
	first.DiscardDraft()
	assert.Nil(t, first.CurrentDraft())

	other := w.For(*admin)
	assert.NotSame(t, first, other)

	w.Reset()
	assert.NotSame(t, other, w.For(*admin))
}

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, FieldErrors(nil, ""))
	assert.Nil(t, FieldErrors(assert.AnError, ""))

	errs := FieldErrors(v.Struct(MedicineRow{Dosage: "5mg"}), "medicines.r1")
	assert.Equal(t, map[string]string{
		"medicines.r1.frequency": "Frequency is required",
		"medicines.r1.duration":  "Duration is required",
	}, errs)
}
