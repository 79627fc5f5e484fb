package service

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"medidesk/internal/model"
)

// TimelineMedicine is a medicine with its rendered badge.
type TimelineMedicine struct {
	model.Medicine
	Badge model.Badge `json:"badge"`
}

// TimelineLabReport is a lab report with its rendered badge.
type TimelineLabReport struct {
	model.LabReport
	Badge model.Badge `json:"badge"`
}

// TimelineEntry is one prescription in the patient timeline.
type TimelineEntry struct {
	ID         string              `json:"id"`
	Diagnosis  string              `json:"diagnosis"`
	Symptoms   []string            `json:"symptoms"`
	Status     model.Badge         `json:"status"`
	Medicines  []TimelineMedicine  `json:"medicines"`
	LabReports []TimelineLabReport `json:"labReports"`
	CreatedAt  string              `json:"createdAt"`
}

// TimelineView is a patient with their prescriptions, newest first.
type TimelineView struct {
	Patient model.Patient   `json:"patient"`
	Entries []TimelineEntry `json:"entries"`
}

// LoadTimeline fetches the patient and their history concurrently.
func LoadTimeline(ctx context.Context, api PatientGateway, patientID string) (TimelineView, error) {
	var (
		g       errgroup.Group
		patient model.Patient
		history []model.Prescription
	)
	g.Go(func() error {
		res := api.GetPatient(ctx, patientID)
		if !res.Success {
			return fmt.Errorf("get patient: %w", res.Err())
		}
		patient = res.Data
		return nil
	})
	g.Go(func() error {
		res := api.PatientHistory(ctx, patientID)
		if !res.Success {
			return fmt.Errorf("get patient history: %w", res.Err())
		}
		history = res.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return TimelineView{}, err
	}
	return TimelineView{Patient: patient, Entries: BuildTimeline(history)}, nil
}

// BuildTimeline orders prescriptions newest first and renders badges.
func BuildTimeline(prescriptions []model.Prescription) []TimelineEntry {
	sorted := slices.Clone(prescriptions)
	slices.SortStableFunc(sorted, func(a, b model.Prescription) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	entries := make([]TimelineEntry, 0, len(sorted))
	for _, p := range sorted {
		e := TimelineEntry{
			ID:         p.ID,
			Diagnosis:  p.Diagnosis,
			Symptoms:   p.Symptoms,
			Status:     p.Status.Badge(),
			Medicines:  make([]TimelineMedicine, 0, len(p.Medicines)),
			LabReports: make([]TimelineLabReport, 0, len(p.LabReports)),
			CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
		}
		for _, m := range p.Medicines {
			e.Medicines = append(e.Medicines, TimelineMedicine{Medicine: m, Badge: m.Status.Badge()})
		}
		for _, r := range p.LabReports {
			e.LabReports = append(e.LabReports, TimelineLabReport{LabReport: r, Badge: r.Status.Badge()})
		}
		entries = append(entries, e)
	}
	return entries
}
