package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medidesk/internal/model"
)

// Portal paths the guard redirects to.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision is the outcome of a route guard check.
type Decision int

const (
	Allow Decision = iota
	ShowLoading
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// StateSource exposes the current session state.
type StateSource interface {
	State() model.AuthState
}

// Decide returns the guard outcome for state. An empty roles list admits
// any authenticated user. Loading wins over every other outcome so that
// nothing is rendered or redirected before the session is resolved.
func Decide(state model.AuthState, roles ...model.Role) Decision {
	switch {
	case state.Loading:
		return ShowLoading
	case !state.IsAuthenticated || state.User == nil:
		return RedirectLogin
	case !state.HasRole(roles...):
		return RedirectUnauthorized
	}
	return Allow
}

// LoadingView is the body rendered while the session is resolving.
type LoadingView struct {
	Loading bool `json:"loading"`
}

// RequireRole guards a route. The session state is read once per request.
func RequireRole(src StateSource, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch Decide(src.State(), roles...) {
			case ShowLoading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, LoadingView{Loading: true})
			case RedirectLogin:
				return c.Redirect(http.StatusSeeOther, LoginPath)
			case RedirectUnauthorized:
				return c.Redirect(http.StatusSeeOther, UnauthorizedPath)
			}
			return next(c)
		}
	}
}
