package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medidesk/internal/audit"
	"medidesk/internal/model"
	"medidesk/internal/service"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AdminHandler handles staff account management and the audit trail.
type AdminHandler struct {
	*Renderer
	audit audit.Recorder
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(r *Renderer, recorder audit.Recorder) *AdminHandler {
	return &AdminHandler{Renderer: r, audit: recorder}
}

// AuditView lists recent workstation actions.
type AuditView struct {
	Entries []model.ActionLog `json:"entries"`
}

func (h *AdminHandler) users() (*service.UserManagement, error) {
	views, _, err := h.views()
	if err != nil {
		return nil, err
	}
	return views.Users, nil
}

// Users godoc
// @Summary User management page
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Router /admin [get]
func (h *AdminHandler) Users(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	u.Load(c.Request().Context())
	return h.ok(c, u.Snapshot(), nil)
}

// OpenCreate godoc
// @Summary Open the create-user dialog
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Router /admin/users/new [post]
func (h *AdminHandler) OpenCreate(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	u.OpenCreate()
	return h.ok(c, u.Snapshot(), nil)
}

// OpenEdit godoc
// @Summary Open the edit-user dialog
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Page
// @Failure 404 {object} Page
// @Router /admin/users/{id}/edit [post]
func (h *AdminHandler) OpenEdit(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = u.OpenEdit(c.Param("id"))
	return h.ok(c, u.Snapshot(), err)
}

// Save godoc
// @Summary Submit the open user dialog
// @Description Creates or updates depending on the dialog mode. The
// @Description username of an existing user never changes.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.UserInput true "User data"
// @Success 200 {object} Page
// @Failure 409 {object} Page
// @Failure 422 {object} Page
// @Failure 502 {object} Page
// @Router /admin/users/save [post]
func (h *AdminHandler) Save(c echo.Context) error {
	var req service.UserInput
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	_, err = u.SubmitUser(c.Request().Context(), req)
	return h.ok(c, u.Snapshot(), err)
}

// CloseModal godoc
// @Summary Close the user dialog
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Router /admin/users/modal [delete]
func (h *AdminHandler) CloseModal(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	u.CloseModal()
	return h.ok(c, u.Snapshot(), nil)
}

// RequestDelete godoc
// @Summary Ask to delete a user
// @Description Nothing is sent until the deletion is confirmed.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Page
// @Failure 404 {object} Page
// @Router /admin/users/{id}/delete [post]
func (h *AdminHandler) RequestDelete(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = u.RequestDelete(c.Param("id"))
	return h.ok(c, u.Snapshot(), err)
}

// CancelDelete godoc
// @Summary Cancel the pending deletion
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Router /admin/users/delete [delete]
func (h *AdminHandler) CancelDelete(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	u.CancelDelete()
	return h.ok(c, u.Snapshot(), nil)
}

// ConfirmDelete godoc
// @Summary Delete the selected user
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Failure 409 {object} Page
// @Failure 502 {object} Page
// @Router /admin/users/delete/confirm [post]
func (h *AdminHandler) ConfirmDelete(c echo.Context) error {
	u, err := h.users()
	if err != nil {
		return h.ok(c, nil, err)
	}
	err = u.ConfirmDelete(c.Request().Context())
	return h.ok(c, u.Snapshot(), err)
}

// Audit godoc
// @Summary Recent workstation actions
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} Page
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/audit [get]
func (h *AdminHandler) Audit(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest("limit must be a positive integer")
		}
		limit = min(n, maxAuditLimit)
	}

	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return h.ok(c, nil, err)
	}
	if entries == nil {
		entries = []model.ActionLog{}
	}
	return h.render(c, http.StatusOK, AuditView{Entries: entries}, nil)
}
