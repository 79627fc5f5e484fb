package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"medidesk/internal/audit"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

const (
	doctorPatientLimit      = 5
	doctorPrescriptionLimit = 10
)

// DoctorView is the doctor dashboard as rendered.
type DoctorView struct {
	Patients             Resource[[]model.Patient]      `json:"patients"`
	Prescriptions        Resource[[]model.Prescription] `json:"prescriptions"`
	Search               string                         `json:"search"`
	PendingPrescriptions int                            `json:"pendingPrescriptions"`
	PendingLabReports    int                            `json:"pendingLabReports"`
}

type doctorGateway interface {
	PatientGateway
	PrescriptionGateway
}

// DoctorDashboard shows recent patients and prescriptions and lets the
// doctor search patients and move prescription statuses.
type DoctorDashboard struct {
	api   doctorGateway
	notes *notify.Queue
	audit audit.Recorder
	actor *model.User
	log   zerolog.Logger

	mu     sync.Mutex
	view   DoctorView
	status inflight
}

// NewDoctorDashboard creates an unloaded dashboard for actor.
func NewDoctorDashboard(api doctorGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, log zerolog.Logger) *DoctorDashboard {
	return &DoctorDashboard{
		api:   api,
		notes: notes,
		audit: recorder,
		actor: actor,
		log:   log.With().Str("view", "doctor_dashboard").Logger(),
	}
}

// Load fetches patients and prescriptions concurrently. Each resource keeps
// its own loading flag and error.
func (d *DoctorDashboard) Load(ctx context.Context) {
	d.mu.Lock()
	d.view.Patients.start()
	d.view.Prescriptions.start()
	d.view.Search = ""
	d.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		res := d.api.ListPatients(ctx, 1, doctorPatientLimit, "")
		d.mu.Lock()
		d.view.Patients.finish(res)
		d.mu.Unlock()
		if !res.Success {
			d.log.Warn().Str("error", res.Error).Msg("fetch patients")
		}
		return nil
	})
	g.Go(func() error {
		res := d.api.ListPrescriptions(ctx, 1, doctorPrescriptionLimit)
		d.mu.Lock()
		d.view.Prescriptions.finish(res)
		d.mu.Unlock()
		if !res.Success {
			d.log.Warn().Str("error", res.Error).Msg("fetch prescriptions")
		}
		return nil
	})
	_ = g.Wait()
}

// Search replaces the patient list with matches for term. A blank term is
// ignored and reported as false.
func (d *DoctorDashboard) Search(ctx context.Context, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}

	d.mu.Lock()
	d.view.Patients.start()
	d.view.Search = term
	d.mu.Unlock()

	res := d.api.ListPatients(ctx, 1, doctorPatientLimit, term)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Patients.finish(res)
	return true
}

// UpdatePrescriptionStatus moves a prescription and replaces the local copy
// with the backend's answer.
func (d *DoctorDashboard) UpdatePrescriptionStatus(ctx context.Context, id string, status model.PrescriptionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("prescription status %q: %w", status, apperrors.ErrValidation)
	}
	if err := d.status.start(); err != nil {
		return err
	}
	defer d.status.done()

	res := d.api.UpdatePrescriptionStatus(ctx, id, status)
	d.audit.Record(ctx, audit.Entry(d.actor, model.ActionUpdatePrescription, id+"="+string(status), res.Err()))
	if !res.Success {
		d.notes.Error(res.Error)
		return fmt.Errorf("update prescription status: %w", res.Err())
	}

	d.mu.Lock()
	list := slices.Clone(d.view.Prescriptions.Data)
	for i := range list {
		if list[i].ID == id {
			list[i] = res.Data
		}
	}
	d.view.Prescriptions.Data = list
	d.mu.Unlock()

	d.notes.Success("Prescription status updated")
	return nil
}

// Snapshot returns the current view with derived counters.
func (d *DoctorDashboard) Snapshot() DoctorView {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.view
	v.Patients.Data = slices.Clone(v.Patients.Data)
	v.Prescriptions.Data = slices.Clone(v.Prescriptions.Data)
	for _, p := range v.Prescriptions.Data {
		if p.Status == model.PrescriptionPending {
			v.PendingPrescriptions++
		}
		v.PendingLabReports += len(p.PendingLabReports())
	}
	return v
}
