package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/errors"
	"medidesk/internal/service"
)

// PrescriptionHandler drives the prescription draft of the signed-in
// doctor.
type PrescriptionHandler struct {
	*Renderer
}

// NewPrescriptionHandler creates a new prescription handler.
func NewPrescriptionHandler(r *Renderer) *PrescriptionHandler {
	return &PrescriptionHandler{Renderer: r}
}

// RowCreated is returned when a row was added to the draft.
type RowCreated struct {
	ID   string                       `json:"id"`
	Form service.PrescriptionFormView `json:"form"`
}

func (h *PrescriptionHandler) draft() (*service.PrescriptionForm, error) {
	views, _, err := h.views()
	if err != nil {
		return nil, err
	}
	f := views.CurrentDraft()
	if f == nil {
		return nil, errors.ErrNotOpen
	}
	return f, nil
}

// New godoc
// @Summary Open a prescription draft
// @Description Reuses the open draft when it belongs to the same patient.
// @Tags prescriptions
// @Produce json
// @Param patientId query string true "Patient ID"
// @Success 200 {object} Page
// @Failure 400 {object} errors.ErrorResponse
// @Router /prescriptions/new [get]
func (h *PrescriptionHandler) New(c echo.Context) error {
	patientID := c.QueryParam("patientId")
	if patientID == "" {
		return badRequest("patientId is required")
	}
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	return h.ok(c, views.Draft(patientID).Snapshot(), nil)
}

// Update godoc
// @Summary Replace the draft contents
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param request body service.PrescriptionDraft true "Draft"
// @Success 200 {object} Page
// @Failure 409 {object} Page
// @Router /prescriptions/draft [put]
func (h *PrescriptionHandler) Update(c echo.Context) error {
	var req service.PrescriptionDraft
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	f, err := h.draft()
	if err != nil {
		return h.ok(c, nil, err)
	}
	f.Update(req)
	return h.ok(c, f.Snapshot(), nil)
}

// AddRow godoc
// @Summary Add a row to a draft collection
// @Tags prescriptions
// @Produce json
// @Param collection path string true "symptoms, medicines or labTests"
// @Success 201 {object} Page
// @Failure 404 {object} Page
// @Router /prescriptions/draft/{collection} [post]
func (h *PrescriptionHandler) AddRow(c echo.Context) error {
	f, err := h.draft()
	if err != nil {
		return h.ok(c, nil, err)
	}
	id, err := f.AddRow(c.Param("collection"))
	if err != nil {
		return h.ok(c, f.Snapshot(), err)
	}
	return h.render(c, http.StatusCreated, RowCreated{ID: id, Form: f.Snapshot()}, nil)
}

// RemoveRow godoc
// @Summary Remove a row from a draft collection
// @Description The last row of a collection cannot be removed.
// @Tags prescriptions
// @Produce json
// @Param collection path string true "symptoms, medicines or labTests"
// @Param rowId path string true "Row ID"
// @Success 200 {object} Page
// @Failure 400 {object} Page
// @Failure 404 {object} Page
// @Router /prescriptions/draft/{collection}/{rowId} [delete]
func (h *PrescriptionHandler) RemoveRow(c echo.Context) error {
	f, err := h.draft()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = f.RemoveRow(c.Param("collection"), c.Param("rowId"))
	return h.ok(c, f.Snapshot(), err)
}

// Submit godoc
// @Summary Submit the draft
// @Tags prescriptions
// @Produce json
// @Success 201 {object} Page
// @Failure 409 {object} Page
// @Failure 422 {object} Page
// @Failure 502 {object} Page
// @Router /prescriptions/draft/submit [post]
func (h *PrescriptionHandler) Submit(c echo.Context) error {
	f, err := h.draft()
	if err != nil {
		return h.ok(c, nil, err)
	}
	_, err = f.Submit(c.Request().Context())
	return h.render(c, http.StatusCreated, f.Snapshot(), err)
}

// DismissBanner godoc
// @Summary Dismiss the draft failure banner
// @Tags prescriptions
// @Produce json
// @Success 200 {object} Page
// @Router /prescriptions/draft/banner [delete]
func (h *PrescriptionHandler) DismissBanner(c echo.Context) error {
	f, err := h.draft()
	if err != nil {
		return h.ok(c, nil, err)
	}
	f.DismissBanner()
	return h.ok(c, f.Snapshot(), nil)
}

// Discard godoc
// @Summary Discard the draft
// @Tags prescriptions
// @Success 204
// @Router /prescriptions/draft [delete]
func (h *PrescriptionHandler) Discard(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.DiscardDraft()
	return c.NoContent(http.StatusNoContent)
}
