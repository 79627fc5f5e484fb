package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"medidesk/internal/audit"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

// PatientInput is the registration form input.
type PatientInput struct {
	Name   string       `json:"name" validate:"required"`
	Phone  string       `json:"phone" validate:"required,phone10"`
	Age    int          `json:"age" validate:"required,gt=0,lte=120"`
	Gender model.Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

// PatientFormView is the registration form as rendered.
type PatientFormView struct {
	Input      PatientInput      `json:"input"`
	Errors     map[string]string `json:"errors,omitempty"`
	Banner     string            `json:"banner,omitempty"`
	Submitting bool              `json:"submitting"`
	Created    *model.Patient    `json:"created,omitempty"`
}

// PatientRegistration registers new patients.
type PatientRegistration struct {
	api      PatientGateway
	notes    *notify.Queue
	audit    audit.Recorder
	actor    *model.User
	validate *validator.Validate
	log      zerolog.Logger

	mu      sync.Mutex
	input   PatientInput
	errors  map[string]string
	banner  string
	created *model.Patient
	submit  inflight
}

// NewPatientRegistration creates an empty registration form.
func NewPatientRegistration(api PatientGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, validate *validator.Validate, log zerolog.Logger) *PatientRegistration {
	return &PatientRegistration{
		api:      api,
		notes:    notes,
		audit:    recorder,
		actor:    actor,
		validate: validate,
		log:      log.With().Str("view", "patient_registration").Logger(),
	}
}

// Submit validates input before any network call and registers the
// patient. The input is kept on failure and cleared on success.
func (r *PatientRegistration) Submit(ctx context.Context, in PatientInput) (*model.Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	r.mu.Lock()
	r.input = in
	r.created = nil
	r.errors = FieldErrors(r.validate.Struct(in), "")
	if len(r.errors) > 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("patient: %w", apperrors.ErrValidation)
	}
	r.banner = ""
	r.mu.Unlock()

	if err := r.submit.start(); err != nil {
		return nil, err
	}
	defer r.submit.done()

	res := r.api.CreatePatient(ctx, model.NewPatient{Name: in.Name, Phone: in.Phone, Age: in.Age, Gender: in.Gender})
	r.audit.Record(ctx, audit.Entry(r.actor, model.ActionRegisterPatient, in.Phone, res.Err()))
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Failed to register patient"
		}
		r.mu.Lock()
		r.banner = msg
		r.mu.Unlock()
		r.notes.Error(msg)
		return nil, fmt.Errorf("register patient: %w", res.Err())
	}

	p := res.Data
	r.mu.Lock()
	r.input = PatientInput{}
	r.created = &p
	r.mu.Unlock()
	r.notes.Success("Patient registered successfully")
	return &p, nil
}

// DismissBanner clears the inline failure message.
func (r *PatientRegistration) DismissBanner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = ""
}

// Snapshot returns the current view.
func (r *PatientRegistration) Snapshot() PatientFormView {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs map[string]string
	return PatientFormView{
		Input:      r.input,
		Errors:     mergeErrors(errs, r.errors),
		Banner:     r.banner,
		Submitting: r.submit.active(),
		Created:    r.created,
	}
}
