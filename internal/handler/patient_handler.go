package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/service"
)

// PatientHandler handles patient registration and the patient timeline.
type PatientHandler struct {
	*Renderer
	api service.PatientGateway
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(r *Renderer, api service.PatientGateway) *PatientHandler {
	return &PatientHandler{Renderer: r, api: api}
}

// RegisterForm godoc
// @Summary Patient registration form
// @Tags patients
// @Produce json
// @Success 200 {object} Page
// @Router /patients/register [get]
func (h *PatientHandler) RegisterForm(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	return h.ok(c, views.Registration.Snapshot(), nil)
}

// Register godoc
// @Summary Register a patient
// @Description Input is validated before anything is sent to the backend.
// @Tags patients
// @Accept json
// @Produce json
// @Param request body service.PatientInput true "Patient data"
// @Success 201 {object} Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} Page
// @Failure 502 {object} Page
// @Router /patients/register [post]
func (h *PatientHandler) Register(c echo.Context) error {
	var req service.PatientInput
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	_, err = views.Registration.Submit(c.Request().Context(), req)
	return h.render(c, http.StatusCreated, views.Registration.Snapshot(), err)
}

// Timeline godoc
// @Summary Patient timeline
// @Description The patient with their prescriptions, newest first.
// @Tags patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} Page
// @Failure 502 {object} Page
// @Router /patients/{id}/timeline [get]
func (h *PatientHandler) Timeline(c echo.Context) error {
	view, err := service.LoadTimeline(c.Request().Context(), h.api, c.Param("id"))
	if err != nil {
		return h.ok(c, nil, err)
	}
	return h.ok(c, view, nil)
}
