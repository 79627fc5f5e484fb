package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medidesk/internal/audit"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

// SymptomRow is one symptom input.
type SymptomRow struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MedicineRow is one medicine input. Dosage, frequency and duration are
// required once the row has a name.
type MedicineRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
	Notes     string `json:"notes"`
}

// LabTestRow is one requested lab test input.
type LabTestRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

func (r SymptomRow) rowKey() string  { return r.ID }
func (r MedicineRow) rowKey() string { return r.ID }
func (r LabTestRow) rowKey() string  { return r.ID }

type keyed interface {
	SymptomRow | MedicineRow | LabTestRow
	rowKey() string
}

func rowIndex[R keyed](rows []R, id string) int {
	return slices.IndexFunc(rows, func(r R) bool { return r.rowKey() == id })
}

// removeRow drops the row with id. The last remaining row is kept.
func removeRow[R keyed](rows []R, id string) ([]R, error) {
	i := rowIndex(rows, id)
	if i < 0 {
		return rows, fmt.Errorf("row %s: %w", id, apperrors.ErrRowNotFound)
	}
	if len(rows) == 1 {
		return rows, apperrors.ErrLastRow
	}
	return slices.Delete(slices.Clone(rows), i, i+1), nil
}

// Row collections of the prescription draft.
const (
	CollectionSymptoms  = "symptoms"
	CollectionMedicines = "medicines"
	CollectionLabTests  = "labTests"
)

// PrescriptionDraft is the editable state of the prescription form.
type PrescriptionDraft struct {
	PatientID string        `json:"patientId"`
	Diagnosis string        `json:"diagnosis"`
	Symptoms  []SymptomRow  `json:"symptoms"`
	Medicines []MedicineRow `json:"medicines"`
	LabTests  []LabTestRow  `json:"labTests"`
}

// PrescriptionFormView is the prescription form as rendered.
type PrescriptionFormView struct {
	Draft      PrescriptionDraft `json:"draft"`
	Errors     map[string]string `json:"errors,omitempty"`
	Banner     string            `json:"banner,omitempty"`
	Submitting bool              `json:"submitting"`
}

type prescriptionInput struct {
	Diagnosis string   `json:"diagnosis" validate:"required"`
	Symptoms  []string `json:"symptoms" validate:"min=1"`
}

// PrescriptionForm authors a new prescription for one patient.
type PrescriptionForm struct {
	api      PrescriptionGateway
	notes    *notify.Queue
	audit    audit.Recorder
	actor    *model.User
	validate *validator.Validate
	log      zerolog.Logger
	newID    func() string

	mu     sync.Mutex
	draft  PrescriptionDraft
	errors map[string]string
	banner string
	submit inflight
}

// NewPrescriptionForm opens an empty draft for patientID with one row in
// every collection.
func NewPrescriptionForm(api PrescriptionGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, validate *validator.Validate, patientID string, log zerolog.Logger) *PrescriptionForm {
	f := &PrescriptionForm{
		api:      api,
		notes:    notes,
		audit:    recorder,
		actor:    actor,
		validate: validate,
		log:      log.With().Str("view", "prescription_form").Logger(),
		newID:    uuid.NewString,
	}
	f.draft = f.emptyDraft(patientID)
	return f
}

func (f *PrescriptionForm) emptyDraft(patientID string) PrescriptionDraft {
	return PrescriptionDraft{
		PatientID: patientID,
		Symptoms:  []SymptomRow{{ID: f.newID()}},
		Medicines: []MedicineRow{{ID: f.newID()}},
		LabTests:  []LabTestRow{{ID: f.newID()}},
	}
}

// PatientID returns the patient the draft is written for.
func (f *PrescriptionForm) PatientID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.PatientID
}

// AddRow appends an empty row to collection and returns its id.
func (f *PrescriptionForm) AddRow(collection string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.newID()
	switch collection {
	case CollectionSymptoms:
		f.draft.Symptoms = append(slices.Clone(f.draft.Symptoms), SymptomRow{ID: id})
	case CollectionMedicines:
		f.draft.Medicines = append(slices.Clone(f.draft.Medicines), MedicineRow{ID: id})
	case CollectionLabTests:
		f.draft.LabTests = append(slices.Clone(f.draft.LabTests), LabTestRow{ID: id})
	default:
		return "", fmt.Errorf("collection %q: %w", collection, apperrors.ErrRowNotFound)
	}
	return id, nil
}

// RemoveRow removes the row with id from collection. Removing the only row
// fails with ErrLastRow.
func (f *PrescriptionForm) RemoveRow(collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var err error
	switch collection {
	case CollectionSymptoms:
		f.draft.Symptoms, err = removeRow(f.draft.Symptoms, id)
	case CollectionMedicines:
		f.draft.Medicines, err = removeRow(f.draft.Medicines, id)
	case CollectionLabTests:
		f.draft.LabTests, err = removeRow(f.draft.LabTests, id)
	default:
		err = fmt.Errorf("collection %q: %w", collection, apperrors.ErrRowNotFound)
	}
	if err == nil {
		f.dropRowErrors(collection, id)
	}
	return err
}

func (f *PrescriptionForm) dropRowErrors(collection, id string) {
	prefix := collection + "." + id + "."
	for k := range f.errors {
		if strings.HasPrefix(k, prefix) {
			delete(f.errors, k)
		}
	}
}

// Update replaces diagnosis and row contents. Rows are matched by id;
// incoming rows without an id get a fresh one. Row order follows the
// input. The patient cannot be changed.
func (f *PrescriptionForm) Update(d PrescriptionDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d.PatientID = f.draft.PatientID
	for i := range d.Symptoms {
		if d.Symptoms[i].ID == "" {
			d.Symptoms[i].ID = f.newID()
		}
	}
	for i := range d.Medicines {
		if d.Medicines[i].ID == "" {
			d.Medicines[i].ID = f.newID()
		}
	}
	for i := range d.LabTests {
		if d.LabTests[i].ID == "" {
			d.LabTests[i].ID = f.newID()
		}
	}
	if len(d.Symptoms) == 0 {
		d.Symptoms = []SymptomRow{{ID: f.newID()}}
	}
	if len(d.Medicines) == 0 {
		d.Medicines = []MedicineRow{{ID: f.newID()}}
	}
	if len(d.LabTests) == 0 {
		d.LabTests = []LabTestRow{{ID: f.newID()}}
	}
	f.draft = d
}

// Normalize builds the submission payload: blank symptoms and rows with a
// blank name are dropped, every kept value is trimmed. Ids and statuses are
// left to the backend.
func Normalize(d PrescriptionDraft, doctorID string) model.NewPrescription {
	out := model.NewPrescription{
		PatientID:  d.PatientID,
		DoctorID:   doctorID,
		Diagnosis:  strings.TrimSpace(d.Diagnosis),
		Symptoms:   []string{},
		Medicines:  []model.NewMedicine{},
		LabReports: []model.NewLabReport{},
	}
	for _, s := range d.Symptoms {
		if t := strings.TrimSpace(s.Text); t != "" {
			out.Symptoms = append(out.Symptoms, t)
		}
	}
	for _, m := range d.Medicines {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		out.Medicines = append(out.Medicines, model.NewMedicine{
			Name:      name,
			Dosage:    strings.TrimSpace(m.Dosage),
			Frequency: strings.TrimSpace(m.Frequency),
			Duration:  strings.TrimSpace(m.Duration),
			Notes:     strings.TrimSpace(m.Notes),
		})
	}
	for _, l := range d.LabTests {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		out.LabReports = append(out.LabReports, model.NewLabReport{Name: name, Notes: strings.TrimSpace(l.Notes)})
	}
	return out
}

// validateDraft returns field errors keyed by field, or by
// "medicines.<rowID>.<field>" for medicine rows.
func (f *PrescriptionForm) validateDraft(d PrescriptionDraft, payload model.NewPrescription) map[string]string {
	var errs map[string]string
	input := prescriptionInput{Diagnosis: payload.Diagnosis, Symptoms: payload.Symptoms}
	errs = mergeErrors(errs, FieldErrors(f.validate.Struct(input), ""))
	for _, m := range d.Medicines {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		row := MedicineRow{
			Dosage:    strings.TrimSpace(m.Dosage),
			Frequency: strings.TrimSpace(m.Frequency),
			Duration:  strings.TrimSpace(m.Duration),
		}
		errs = mergeErrors(errs, FieldErrors(f.validate.Struct(row), CollectionMedicines+"."+m.ID))
	}
	return errs
}

// Submit validates and sends the draft. Field errors and failures keep the
// draft; success resets it for the same patient.
func (f *PrescriptionForm) Submit(ctx context.Context) (*model.Prescription, error) {
	if f.actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	f.mu.Lock()
	draft := f.draft
	payload := Normalize(draft, f.actor.ID)
	errs := f.validateDraft(draft, payload)
	f.errors = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		return nil, fmt.Errorf("prescription: %w", apperrors.ErrValidation)
	}
	f.banner = ""
	f.mu.Unlock()

	if err := f.submit.start(); err != nil {
		return nil, err
	}
	defer f.submit.done()

	res := f.api.CreatePrescription(ctx, payload)
	f.audit.Record(ctx, audit.Entry(f.actor, model.ActionCreatePrescription, payload.PatientID, res.Err()))
	if !res.Success {
		f.mu.Lock()
		f.banner = res.Error
		f.mu.Unlock()
		f.notes.Error(res.Error)
		return nil, fmt.Errorf("create prescription: %w", res.Err())
	}

	f.mu.Lock()
	f.draft = f.emptyDraft(draft.PatientID)
	f.errors = nil
	f.mu.Unlock()
	f.notes.Success("Prescription created successfully")
	created := res.Data
	return &created, nil
}

// DismissBanner clears the inline failure message.
func (f *PrescriptionForm) DismissBanner() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banner = ""
}

// Snapshot returns the current view.
func (f *PrescriptionForm) Snapshot() PrescriptionFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.Symptoms = slices.Clone(d.Symptoms)
	d.Medicines = slices.Clone(d.Medicines)
	d.LabTests = slices.Clone(d.LabTests)
	var errs map[string]string
	errs = mergeErrors(errs, f.errors)
	return PrescriptionFormView{Draft: d, Errors: errs, Banner: f.banner, Submitting: f.submit.active()}
}
