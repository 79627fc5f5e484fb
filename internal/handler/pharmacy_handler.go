package handler

import (
	"github.com/labstack/echo/v4"
)

// PharmacyHandler serves the pharmacy dashboard and dispensing.
type PharmacyHandler struct {
	*Renderer
}

// NewPharmacyHandler creates a new pharmacy handler.
func NewPharmacyHandler(r *Renderer) *PharmacyHandler {
	return &PharmacyHandler{Renderer: r}
}

// OpenDispenseRequest selects the prescription to dispense from.
type OpenDispenseRequest struct {
	PrescriptionID string `json:"prescriptionId" form:"prescriptionId" validate:"required"`
}

// Dashboard godoc
// @Summary Pharmacy dashboard
// @Description Prescriptions with at least one pending medicine.
// @Tags pharmacy
// @Produce json
// @Success 200 {object} Page
// @Router /pharmacy [get]
func (h *PharmacyHandler) Dashboard(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Pharmacy.Load(c.Request().Context())
	return h.ok(c, views.Pharmacy.Snapshot(), nil)
}

// OpenDispense godoc
// @Summary Open the dispense dialog
// @Tags pharmacy
// @Accept json
// @Produce json
// @Param request body OpenDispenseRequest true "Prescription"
// @Success 200 {object} Page
// @Failure 404 {object} Page
// @Router /pharmacy/dispense [post]
func (h *PharmacyHandler) OpenDispense(c echo.Context) error {
	var req OpenDispenseRequest
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
	err = views.Pharmacy.OpenDispense(req.PrescriptionID)
	return h.ok(c, views.Pharmacy.Snapshot(), err)
}

// Toggle godoc
// @Summary Toggle a medicine in the dispense dialog
// @Tags pharmacy
// @Produce json
// @Param medicineId path string true "Medicine ID"
// @Success 200 {object} Page
// @Failure 404 {object} Page
// @Failure 409 {object} Page
// @Router /pharmacy/dispense/{medicineId} [post]
func (h *PharmacyHandler) Toggle(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = views.Pharmacy.ToggleMedicine(c.Param("medicineId"))
	return h.ok(c, views.Pharmacy.Snapshot(), err)
}

// Submit godoc
// @Summary Dispense the selected medicines
// @Description One backend request per medicine, in parallel. The view's
// @Description lastResult lists every succeeded and failed item.
// @Tags pharmacy
// @Produce json
// @Success 200 {object} Page
// @Failure 400 {object} Page
// @Failure 502 {object} Page
// @Router /pharmacy/dispense/submit [post]
func (h *PharmacyHandler) Submit(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	_, err = views.Pharmacy.SubmitDispense(c.Request().Context())
	return h.ok(c, views.Pharmacy.Snapshot(), err)
}

// CloseDispense godoc
// @Summary Close the dispense dialog
// @Tags pharmacy
// @Produce json
// @Success 200 {object} Page
// @Router /pharmacy/dispense [delete]
func (h *PharmacyHandler) CloseDispense(c echo.Context) error {
	views, _, err := h.views()
	if err != nil {
		return h.ok(c, nil, err)
	}
	views.Pharmacy.CloseDispense()
	return h.ok(c, views.Pharmacy.Snapshot(), nil)
}
