package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/errors"
)

// maxReportSize is the largest report accepted. Larger files are rejected,
// never cut short.
const maxReportSize = 20 << 20

// LabHandler serves the lab dashboard and report uploads.
type LabHandler struct {
	*Renderer
}

// NewLabHandler creates a new lab handler.
func NewLabHandler(r *Renderer) *LabHandler {
	return &LabHandler{Renderer: r}
}

// OpenUploadRequest selects the report slot to upload into.
type OpenUploadRequest struct {
	PrescriptionID string `json:"prescriptionId" form:"prescriptionId" validate:"required"`
	ReportID       string `json:"reportId" form:"reportId" validate:"required"`
}

// Dashboard godoc
// @Summary Lab dashboard
// @Description Prescriptions with at least one pending lab report.
// @Tags lab
// @Produce json
// @Success 200 {object} Page
// @Router /lab-reports [get]
func (h *LabHandler) Dashboard(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Lab.Load(c.Request().Context())
	return h.ok(c, views.Lab.Snapshot(), nil)
}

// OpenUpload godoc
// @Summary Open the upload dialog
// @Tags lab
// @Accept json
// @Produce json
// @Param request body OpenUploadRequest true "Report slot"
// @Success 200 {object} Page
// @Failure 404 {object} Page
// @Router /lab-reports/upload [post]
func (h *LabHandler) OpenUpload(c echo.Context) error {
	var req OpenUploadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = views.Lab.OpenUpload(req.PrescriptionID, req.ReportID)
	return h.ok(c, views.Lab.Snapshot(), err)
}

// Upload godoc
// @Summary Upload the report file
// @Description Multipart form with "file" and optional "notes". A file
// @Description attached earlier is kept when no new file is sent.
// @Tags lab
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Report (.pdf, .jpg, .jpeg, .png)"
// @Param notes formData string false "Notes"
// @Success 200 {object} Page
// @Failure 400 {object} Page
// @Failure 409 {object} Page
// @Failure 413 {object} Page
// @Failure 502 {object} Page
// @Router /lab-reports/upload/submit [post]
func (h *LabHandler) Upload(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	lab := views.Lab

	if err := lab.SetNotes(c.FormValue("notes")); err != nil {
		return h.ok(c, lab.Snapshot(), err)
	}
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		src, err := fh.Open()
		if err != nil {
			return badRequest("cannot read uploaded file")
		}
		defer src.Close()
		content, err := io.ReadAll(io.LimitReader(src, maxReportSize+1))
		if err != nil {
			return badRequest("cannot read uploaded file")
		}
		if len(content) > maxReportSize {
			return h.ok(c, lab.Snapshot(), errors.ErrFileTooLarge)
		}
		if err := lab.SetFile(fh.Filename, content); err != nil {
			return h.ok(c, lab.Snapshot(), err)
		}
	case err != http.ErrMissingFile:
		return badRequest("invalid multipart form")
	}

	err = lab.SubmitUpload(c.Request().Context())
	return h.ok(c, lab.Snapshot(), err)
}

// CloseUpload godoc
// @Summary Close the upload dialog
// @Tags lab
// @Produce json
// @Success 200 {object} Page
// @Router /lab-reports/upload [delete]
func (h *LabHandler) CloseUpload(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Lab.CloseUpload()
	return h.ok(c, views.Lab.Snapshot(), nil)
}
