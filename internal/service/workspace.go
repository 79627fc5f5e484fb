package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"medidesk/internal/audit"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

// Views holds the view state of one signed-in user.
type Views struct {
	Doctor       *DoctorDashboard
	Lab          *LabDashboard
	Pharmacy     *PharmacyDashboard
	Registration *PatientRegistration
	Users        *UserManagement

	mu       sync.Mutex
	draft    *PrescriptionForm
	newDraft func(patientID string) *PrescriptionForm
}

// Draft returns the prescription draft for patientID, opening a fresh one
// when the current draft belongs to another patient.
func (v *Views) Draft(patientID string) *PrescriptionForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil || v.draft.PatientID() != patientID {
		v.draft = v.newDraft(patientID)
	}
	return v.draft
}

// CurrentDraft returns the open draft or nil.
func (v *Views) CurrentDraft() *PrescriptionForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

// DiscardDraft drops the open draft.
func (v *Views) DiscardDraft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = nil
}

// Workspace hands out the views of the signed-in user. View state never
// leaks from one user to the next.
type Workspace struct {
	api      Gateway
	notes    *notify.Queue
	audit    audit.Recorder
	validate *validator.Validate
	policy   MergePolicy
	log      zerolog.Logger

	mu    sync.Mutex
	owner string
	views *Views
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(api Gateway, notes *notify.Queue, recorder audit.Recorder, validate *validator.Validate, policy MergePolicy, log zerolog.Logger) *Workspace {
	return &Workspace{
		api:      api,
		notes:    notes,
		audit:    recorder,
		validate: validate,
		policy:   policy,
		log:      log,
	}
}

// For returns the views of user, building fresh ones when the user changed.
func (w *Workspace) For(user model.User) *Views {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.views != nil && w.owner == user.ID {
		return w.views
	}
	actor := user
	log := w.log.With().Str("user", user.Username).Logger()
	w.owner = user.ID
	w.views = &Views{
		Doctor:       NewDoctorDashboard(w.api, w.notes, w.audit, &actor, log),
		Lab:          NewLabDashboard(w.api, w.notes, w.audit, &actor, log),
		Pharmacy:     NewPharmacyDashboard(w.api, w.notes, w.audit, &actor, w.policy, log),
		Registration: NewPatientRegistration(w.api, w.notes, w.audit, &actor, w.validate, log),
		Users:        NewUserManagement(w.api, w.notes, w.audit, &actor, w.validate, log),
		newDraft: func(patientID string) *PrescriptionForm {
			return NewPrescriptionForm(w.api, w.notes, w.audit, &actor, w.validate, patientID, log)
		},
	}
	return w.views
}

// Reset drops all view state.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.owner = ""
	w.views = nil
}
