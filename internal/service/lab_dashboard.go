package service

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"medidesk/internal/apiclient"
	"medidesk/internal/audit"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

const labPrescriptionLimit = 20

// AcceptedReportExtensions lists the file extensions a lab upload accepts.
var AcceptedReportExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// UploadModal is the open upload dialog of the lab dashboard.
type UploadModal struct {
	PrescriptionID string `json:"prescriptionId"`
	ReportID       string `json:"reportId"`
	ReportName     string `json:"reportName"`
	Notes          string `json:"notes"`
	FileName       string `json:"fileName,omitempty"`
	ContentType    string `json:"contentType,omitempty"`
	Error          string `json:"error,omitempty"`
}

// LabView is the lab dashboard as rendered.
type LabView struct {
	Prescriptions  Resource[[]model.Prescription] `json:"prescriptions"`
	Upload         *UploadModal                   `json:"upload,omitempty"`
	Uploading      bool                           `json:"uploading"`
	PendingCount   int                            `json:"pendingCount"`
	CompletedToday int                            `json:"completedToday"`
}

type labGateway interface {
	PrescriptionGateway
	LabGateway
}

// LabDashboard lists prescriptions with pending lab reports and uploads
// results for them.
type LabDashboard struct {
	api   labGateway
	notes *notify.Queue
	audit audit.Recorder
	actor *model.User
	log   zerolog.Logger
	now   func() time.Time

	mu     sync.Mutex
	view   LabView
	file   *apiclient.File
	submit inflight
}

// NewLabDashboard creates an unloaded lab dashboard for actor.
func NewLabDashboard(api labGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, log zerolog.Logger) *LabDashboard {
	return &LabDashboard{
		api:   api,
		notes: notes,
		audit: recorder,
		actor: actor,
		log:   log.With().Str("view", "lab_dashboard").Logger(),
		now:   time.Now,
	}
}

// Load fetches prescriptions and keeps those with a pending lab report.
func (l *LabDashboard) Load(ctx context.Context) {
	l.mu.Lock()
	l.view.Prescriptions.start()
	l.mu.Unlock()

	res := l.api.ListPrescriptions(ctx, 1, labPrescriptionLimit)
	if res.Success {
		res.Data = slices.DeleteFunc(res.Data, func(p model.Prescription) bool {
			return !p.HasPendingLabReports()
		})
	} else {
		l.log.Warn().Str("error", res.Error).Msg("fetch prescriptions")
		l.notes.Error("Error loading lab reports")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.view.Prescriptions.finish(res)
}

// OpenUpload opens the upload dialog for one pending report and resets the
// file and notes.
func (l *LabDashboard) OpenUpload(prescriptionID, reportID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.view.Prescriptions.Data {
		if p.ID != prescriptionID {
			continue
		}
		r, ok := p.LabReport(reportID)
		if !ok || r.Status != model.LabReportPending {
			break
		}
		l.view.Upload = &UploadModal{PrescriptionID: p.ID, ReportID: r.ID, ReportName: r.Name}
		l.file = nil
		return nil
	}
	return fmt.Errorf("lab report %s/%s: %w", prescriptionID, reportID, apperrors.ErrRowNotFound)
}

// CloseUpload discards the dialog and its input.
func (l *LabDashboard) CloseUpload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.view.Upload = nil
	l.file = nil
}

// SetNotes sets the notes of the open dialog.
func (l *LabDashboard) SetNotes(notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view.Upload == nil {
		return apperrors.ErrNotOpen
	}
	l.view.Upload.Notes = notes
	return nil
}

// SetFile attaches the result file. Only AcceptedReportExtensions are
// allowed; the content type is detected from the content.
func (l *LabDashboard) SetFile(name string, content []byte) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(AcceptedReportExtensions, ext) {
		return fmt.Errorf("%s: %w", name, apperrors.ErrUnsupportedFile)
	}
	contentType := mimetype.Detect(content).String()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view.Upload == nil {
		return apperrors.ErrNotOpen
	}
	l.file = &apiclient.File{Name: name, ContentType: contentType, Content: content}
	l.view.Upload.FileName = name
	l.view.Upload.ContentType = contentType
	return nil
}

// SubmitUpload uploads the selected file. On success the report is marked
// COMPLETED in the local list and the dialog closes; on failure nothing
// changes and the dialog keeps its input.
func (l *LabDashboard) SubmitUpload(ctx context.Context) error {
	l.mu.Lock()
	if l.view.Upload == nil {
		l.mu.Unlock()
		return apperrors.ErrNotOpen
	}
	if l.file == nil {
		l.mu.Unlock()
		l.notes.Error(apperrors.ErrNoFileSelected.Error())
		return apperrors.ErrNoFileSelected
	}
	modal := *l.view.Upload
	file := *l.file
	l.mu.Unlock()

	if err := l.submit.start(); err != nil {
		return err
	}
	defer l.submit.done()

	res := l.api.UploadLabReport(ctx, modal.PrescriptionID, modal.ReportID, file, modal.Notes)
	l.audit.Record(ctx, audit.Entry(l.actor, model.ActionUploadLabReport, modal.PrescriptionID+"/"+modal.ReportID, res.Err()))
	if !res.Success {
		l.mu.Lock()
		if l.view.Upload != nil {
			l.view.Upload.Error = res.Error
		}
		l.mu.Unlock()
		l.notes.Error(res.Error)
		return fmt.Errorf("upload lab report: %w", res.Err())
	}

	l.mu.Lock()
	list := slices.Clone(l.view.Prescriptions.Data)
	for i := range list {
		if list[i].ID != modal.PrescriptionID {
			continue
		}
		report, ok := list[i].LabReport(modal.ReportID)
		if !ok {
			continue
		}
		list[i] = list[i].WithLabReport(completedReport(report, res.Data))
	}
	l.view.Prescriptions.Data = list
	l.view.Upload = nil
	l.file = nil
	l.mu.Unlock()

	l.notes.Success("Lab report uploaded successfully")
	return nil
}

func completedReport(local, remote model.LabReport) model.LabReport {
	local.Status = model.LabReportCompleted
	if remote.ReportURL != "" {
		local.ReportURL = remote.ReportURL
	}
	if remote.UploadedBy != "" {
		local.UploadedBy = remote.UploadedBy
	}
	if remote.UploadedAt != nil {
		local.UploadedAt = remote.UploadedAt
	}
	if remote.Notes != "" {
		local.Notes = remote.Notes
	}
	return local
}

// Snapshot returns the current view with derived counters.
func (l *LabDashboard) Snapshot() LabView {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := l.view
	v.Prescriptions.Data = slices.Clone(v.Prescriptions.Data)
	if v.Upload != nil {
		m := *v.Upload
		v.Upload = &m
	}
	v.Uploading = l.submit.active()

	today := l.now()
	for _, p := range v.Prescriptions.Data {
		for _, r := range p.LabReports {
			switch {
			case r.Status == model.LabReportPending:
				v.PendingCount++
			case r.UploadedAt != nil && sameDay(today, *r.UploadedAt):
				v.CompletedToday++
			}
		}
	}
	return v
}
