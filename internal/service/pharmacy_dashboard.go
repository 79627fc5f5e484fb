package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"medidesk/internal/audit"
	"medidesk/internal/config"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

const pharmacyPrescriptionLimit = 20

// MergePolicy decides how a partially failed dispense batch touches the
// local list.
type MergePolicy string

const (
	// MergeAllOrNothing changes nothing locally unless every item succeeded.
	MergeAllOrNothing MergePolicy = config.DispenseAllOrNothing
	// MergePerItem marks every succeeded item as dispensed.
	MergePerItem MergePolicy = config.DispensePerItem
)

// DispenseModal is the open dispense dialog. Selected holds every pending
// medicine of the prescription.
type DispenseModal struct {
	PrescriptionID string           `json:"prescriptionId"`
	Medicines      []model.Medicine `json:"medicines"`
	Selected       map[string]bool  `json:"selected"`
}

// DispenseFailure is one medicine the backend refused to dispense.
type DispenseFailure struct {
	MedicineID string `json:"medicineId"`
	Error      string `json:"error"`
}

// DispenseResult reports every item of a batch.
type DispenseResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    []DispenseFailure `json:"failed"`
	// Merged is true when the local list was updated.
	Merged bool `json:"merged"`
}

// PharmacyView is the pharmacy dashboard as rendered.
type PharmacyView struct {
	Prescriptions  Resource[[]model.Prescription] `json:"prescriptions"`
	Dispense       *DispenseModal                 `json:"dispense,omitempty"`
	Dispensing     bool                           `json:"dispensing"`
	LastResult     *DispenseResult                `json:"lastResult,omitempty"`
	PendingCount   int                            `json:"pendingCount"`
	DispensedToday int                            `json:"dispensedToday"`
}

type pharmacyGateway interface {
	PrescriptionGateway
	PharmacyGateway
}

// PharmacyDashboard lists prescriptions with pending medicines and
// dispenses them.
type PharmacyDashboard struct {
	api    pharmacyGateway
	notes  *notify.Queue
	audit  audit.Recorder
	actor  *model.User
	policy MergePolicy
	log    zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	view   PharmacyView
	submit inflight
}

// NewPharmacyDashboard creates an unloaded pharmacy dashboard for actor.
// An unknown policy falls back to MergeAllOrNothing.
func NewPharmacyDashboard(api pharmacyGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, policy MergePolicy, log zerolog.Logger) *PharmacyDashboard {
	if policy != MergePerItem {
		policy = MergeAllOrNothing
	}
	return &PharmacyDashboard{
		api:    api,
		notes:  notes,
		audit:  recorder,
		actor:  actor,
		policy: policy,
		log:    log.With().Str("view", "pharmacy_dashboard").Logger(),
		now:    time.Now,
	}
}

// Load fetches prescriptions and keeps those with a pending medicine.
func (p *PharmacyDashboard) Load(ctx context.Context) {
	p.mu.Lock()
	p.view.Prescriptions.start()
	p.mu.Unlock()

	res := p.api.ListPrescriptions(ctx, 1, pharmacyPrescriptionLimit)
	if res.Success {
		res.Data = slices.DeleteFunc(res.Data, func(rx model.Prescription) bool {
			return !rx.HasPendingMedicines()
		})
	} else {
		p.log.Warn().Str("error", res.Error).Msg("fetch prescriptions")
		p.notes.Error("Error loading prescriptions")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Prescriptions.finish(res)
}

// OpenDispense opens the dispense dialog with every pending medicine of the
// prescription unselected.
func (p *PharmacyDashboard) OpenDispense(prescriptionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, rx := range p.view.Prescriptions.Data {
		if rx.ID != prescriptionID {
			continue
		}
		pending := rx.PendingMedicines()
		if len(pending) == 0 {
			break
		}
		selected := make(map[string]bool, len(pending))
		for _, m := range pending {
			selected[m.ID] = false
		}
		p.view.Dispense = &DispenseModal{PrescriptionID: rx.ID, Medicines: pending, Selected: selected}
		p.view.LastResult = nil
		return nil
	}
	return fmt.Errorf("prescription %s: %w", prescriptionID, apperrors.ErrRowNotFound)
}

// ToggleMedicine flips the selection of one medicine in the open dialog.
func (p *PharmacyDashboard) ToggleMedicine(medicineID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view.Dispense == nil {
		return apperrors.ErrNotOpen
	}
	cur, ok := p.view.Dispense.Selected[medicineID]
	if !ok {
		return fmt.Errorf("medicine %s: %w", medicineID, apperrors.ErrRowNotFound)
	}
	p.view.Dispense.Selected[medicineID] = !cur
	return nil
}

// CloseDispense discards the dialog.
func (p *PharmacyDashboard) CloseDispense() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Dispense = nil
}

// SubmitDispense dispenses every selected medicine with one request each,
// all in parallel. The result always lists every item. ErrPartialDispense
// is returned when at least one item failed.
func (p *PharmacyDashboard) SubmitDispense(ctx context.Context) (DispenseResult, error) {
	p.mu.Lock()
	if p.view.Dispense == nil {
		p.mu.Unlock()
		return DispenseResult{}, apperrors.ErrNotOpen
	}
	rxID := p.view.Dispense.PrescriptionID
	var ids []string
	for _, m := range p.view.Dispense.Medicines {
		if p.view.Dispense.Selected[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	p.mu.Unlock()

	if len(ids) == 0 {
		return DispenseResult{}, apperrors.ErrNoSelection
	}
	if err := p.submit.start(); err != nil {
		return DispenseResult{}, err
	}
	defer p.submit.done()

	outcomes := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			res := p.api.UpdateMedicineStatus(ctx, rxID, id, model.MedicineDispensed)
			outcomes[i] = res.Err()
			p.audit.Record(ctx, audit.Entry(p.actor, model.ActionDispenseMedicine, rxID+"/"+id, outcomes[i]))
			return nil
		})
	}
	_ = g.Wait()

	result := DispenseResult{Succeeded: []string{}, Failed: []DispenseFailure{}}
	for i, id := range ids {
		if outcomes[i] == nil {
			result.Succeeded = append(result.Succeeded, id)
			continue
		}
		result.Failed = append(result.Failed, DispenseFailure{MedicineID: id, Error: outcomes[i].Error()})
	}

	merge := len(result.Failed) == 0 || (p.policy == MergePerItem && len(result.Succeeded) > 0)

	p.mu.Lock()
	if merge {
		p.mergeDispensed(rxID, result.Succeeded)
		result.Merged = true
	}
	if len(result.Failed) == 0 {
		p.view.Dispense = nil
	} else if result.Merged && p.view.Dispense != nil {
		for _, id := range result.Succeeded {
			delete(p.view.Dispense.Selected, id)
		}
		p.view.Dispense.Medicines = slices.DeleteFunc(slices.Clone(p.view.Dispense.Medicines), func(m model.Medicine) bool {
			_, still := p.view.Dispense.Selected[m.ID]
			return !still
		})
	}
	r := result
	p.view.LastResult = &r
	p.mu.Unlock()

	switch {
	case len(result.Failed) == 0:
		p.notes.Success("Medicines dispensed successfully")
		return result, nil
	case p.policy == MergePerItem:
		p.notes.Error(fmt.Sprintf("Failed to dispense %d of %d medicines", len(result.Failed), len(ids)))
	default:
		p.notes.Error("Failed to dispense some medicines")
	}
	return result, apperrors.ErrPartialDispense
}

// mergeDispensed marks ids of prescription rxID as dispensed. Caller holds
// p.mu.
func (p *PharmacyDashboard) mergeDispensed(rxID string, ids []string) {
	list := slices.Clone(p.view.Prescriptions.Data)
	for i := range list {
		if list[i].ID == rxID {
			list[i] = list[i].WithMedicineStatus(ids, model.MedicineDispensed)
		}
	}
	p.view.Prescriptions.Data = list
}

// Snapshot returns the current view with derived counters.
func (p *PharmacyDashboard) Snapshot() PharmacyView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.view
	v.Prescriptions.Data = slices.Clone(v.Prescriptions.Data)
	if v.Dispense != nil {
		m := DispenseModal{
			PrescriptionID: v.Dispense.PrescriptionID,
			Medicines:      slices.Clone(v.Dispense.Medicines),
			Selected:       make(map[string]bool, len(v.Dispense.Selected)),
		}
		for k, sel := range v.Dispense.Selected {
			m.Selected[k] = sel
		}
		v.Dispense = &m
	}
	v.Dispensing = p.submit.active()

	today := p.now()
	for _, rx := range v.Prescriptions.Data {
		updatedToday := sameDay(today, rx.UpdatedAt)
		for _, m := range rx.Medicines {
			switch {
			case m.Status == model.MedicinePending:
				v.PendingCount++
			case m.Status == model.MedicineDispensed && updatedToday:
				v.DispensedToday++
			}
		}
	}
	return v
}
