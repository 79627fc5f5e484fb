package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/auth"
	"medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
	"medidesk/internal/service"
)

// Page is the envelope of every portal response.
type Page struct {
	User          *model.User           `json:"user,omitempty"`
	Nav           []service.NavItem     `json:"nav,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
	Error         *errors.ErrorResponse `json:"error,omitempty"`
	View          any                   `json:"view,omitempty"`
}

// Renderer builds pages around views. It is shared by all handlers.
type Renderer struct {
	session   service.SessionService
	notes     *notify.Queue
	workspace *service.Workspace
}

// NewRenderer creates a renderer.
func NewRenderer(session service.SessionService, notes *notify.Queue, workspace *service.Workspace) *Renderer {
	return &Renderer{session: session, notes: notes, workspace: workspace}
}

// views returns the view state of the signed-in user.
func (r *Renderer) views() (*service.Views, *model.User, error) {
	st := r.session.State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, nil, errors.ErrNotAuthenticated
	}
	return r.workspace.For(*st.User), st.User, nil
}

// render writes view with status, or with the status err maps to. A
// pending forced logout wins over everything and redirects once.
func (r *Renderer) render(c echo.Context, status int, view any, err error) error {
	if r.session.ConsumeRedirect() {
		r.workspace.Reset()
		return c.Redirect(http.StatusSeeOther, auth.LoginPath)
	}

	page := Page{View: view}
	if st := r.session.State(); st.IsAuthenticated && st.User != nil {
		page.User = st.User
		page.Nav = service.NavItems(st.User.Role)
	}
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		resp := httpErr.ToErrorResponse()
		page.Error = &resp
	}
	page.Notifications = r.notes.Drain()
	if page.Notifications == nil {
		page.Notifications = []notify.Notification{}
	}
	return c.JSON(status, page)
}

func (r *Renderer) ok(c echo.Context, view any, err error) error {
	return r.render(c, http.StatusOK, view, err)
}

func badRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  "INVALID_REQUEST",
	})
}
