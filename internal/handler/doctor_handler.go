package handler

import (
	"github.com/labstack/echo/v4"

	"medidesk/internal/errors"
	"medidesk/internal/model"
)

// DoctorHandler serves the doctor dashboard.
type DoctorHandler struct {
	*Renderer
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(r *Renderer) *DoctorHandler {
	return &DoctorHandler{Renderer: r}
}

// StatusRequest represents a prescription status change.
type StatusRequest struct {
	Status model.PrescriptionStatus `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// Dashboard godoc
// @Summary Doctor dashboard
// @Description Recent patients and prescriptions, fetched concurrently.
// @Tags doctor
// @Produce json
// @Success 200 {object} Page
// @Success 202 {object} auth.LoadingView
// @Router /dashboard [get]
func (h *DoctorHandler) Dashboard(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Doctor.Load(c.Request().Context())
	return h.ok(c, views.Doctor.Snapshot(), nil)
}

// Search godoc
// @Summary Search patients
// @Description A blank term leaves the current list untouched.
// @Tags doctor
// @Produce json
// @Param search query string false "Name or phone"
// @Success 200 {object} Page
// @Router /dashboard/patients [get]
func (h *DoctorHandler) Search(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Doctor.Search(c.Request().Context(), c.QueryParam("search"))
	return h.ok(c, views.Doctor.Snapshot(), nil)
}

// UpdateStatus godoc
// @Summary Change a prescription status
// @Tags doctor
// @Accept json
// @Produce json
// @Param id path string true "Prescription ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} Page
// @Failure 502 {object} Page
// @Router /prescriptions/{id}/status [patch]
func (h *DoctorHandler) UpdateStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	if err := c.Validate(&req); err != nil {
		return h.ok(c, views.Doctor.Snapshot(), errors.ErrValidation)
	}
	err = views.Doctor.UpdatePrescriptionStatus(c.Request().Context(), c.Param("id"), req.Status)
	return h.ok(c, views.Doctor.Snapshot(), err)
}
