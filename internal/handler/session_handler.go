package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/auth"
	"medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/service"
)

// SessionHandler handles sign-in and sign-out.
type SessionHandler struct {
	*Renderer
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(r *Renderer) *SessionHandler {
	return &SessionHandler{Renderer: r}
}

// LoginRequest represents a sign-in form submission.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginView is the sign-in page.
type LoginView struct {
	Username string            `json:"username,omitempty"`
	Loading  bool              `json:"loading"`
	Errors   map[string]string `json:"errors,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// LoginPage godoc
// @Summary Sign-in page
// @Tags session
// @Produce json
// @Success 200 {object} Page
// @Success 303 "Already signed in"
// @Router /login [get]
func (h *SessionHandler) LoginPage(c echo.Context) error {
	st := h.session.State()
	if st.IsAuthenticated && st.User != nil {
		return c.Redirect(http.StatusSeeOther, service.HomePath(st.User.Role))
	}
	return h.ok(c, LoginView{Loading: st.Loading, Message: st.Error}, nil)
}

// Login godoc
// @Summary Sign in
// @Tags session
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 303 "Redirect to the role's home page"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} Page
// @Failure 422 {object} Page
// @Router /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	view := LoginView{Username: req.Username}
	if err := c.Validate(&req); err != nil {
		view.Errors = service.FieldErrors(err, "")
		return h.ok(c, view, errors.ErrValidation)
	}

	if !h.session.Login(c.Request().Context(), req.Username, req.Password) {
		st := h.session.State()
		view.Message = st.Error
		return h.ok(c, view, errors.NewHTTPError(http.StatusUnauthorized, st.Error, "LOGIN_FAILED"))
	}

	h.workspace.Reset()
	st := h.session.State()
	home := auth.LoginPath
	if st.User != nil {
		home = service.HomePath(st.User.Role)
	}
	return c.Redirect(http.StatusSeeOther, home)
}

// Logout godoc
// @Summary Sign out
// @Tags session
// @Success 303 "Redirect to the sign-in page"
// @Router /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	h.workspace.Reset()
	return c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

// ReadyView reports how far the session has resolved.
type ReadyView struct {
	Session string `json:"session"`
}

// Readyz godoc
// @Summary Session readiness
// @Tags health
// @Produce json
// @Success 200 {object} ReadyView
// @Success 503 {object} ReadyView
// @Router /readyz [get]
func (h *SessionHandler) Readyz(c echo.Context) error {
	st := h.session.State()
	switch {
	case st.Loading:
		return c.JSON(http.StatusServiceUnavailable, ReadyView{Session: "loading"})
	case st.IsAuthenticated:
		return c.JSON(http.StatusOK, ReadyView{Session: "authenticated"})
	}
	return c.JSON(http.StatusOK, ReadyView{Session: "anonymous"})
}

// Unauthorized godoc
// @Summary Access denied page
// @Tags session
// @Produce json
// @Success 403 {object} Page
// @Router /unauthorized [get]
func (h *SessionHandler) Unauthorized(c echo.Context) error {
	return h.render(c, http.StatusForbidden, nil, errors.NewHTTPError(http.StatusForbidden, "You do not have permission to view this page", "FORBIDDEN"))
}

// NotFound renders the not-found page for any unmatched path.
func (h *SessionHandler) NotFound(c echo.Context) error {
	return h.render(c, http.StatusNotFound, nil, errors.NewHTTPError(http.StatusNotFound, "Page not found", "NOT_FOUND"))
}

// Home sends a visitor to the landing page of their role, or to /dashboard
// while signed out so the guard takes over.
func (h *SessionHandler) Home(c echo.Context) error {
	st := h.session.State()
	if st.IsAuthenticated && st.User != nil {
		return c.Redirect(http.StatusSeeOther, service.HomePath(st.User.Role))
	}
	return c.Redirect(http.StatusSeeOther, service.HomePath(model.RoleDoctor))
}
