package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medidesk/internal/model"
)

type staticState model.AuthState

func (s staticState) State() model.AuthState { return model.AuthState(s) }

func authenticated(role model.Role) model.AuthState {
	return model.AuthState{IsAuthenticated: true, User: &model.User{ID: "u-1", Role: role}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		state model.AuthState
		roles []model.Role
		want  Decision
	}{
		{"loading", model.AuthState{Loading: true}, nil, ShowLoading},
		{"loading while authenticated", model.AuthState{Loading: true, IsAuthenticated: true, User: &model.User{Role: model.RoleAdmin}}, []model.Role{model.RoleAdmin}, ShowLoading},
		{"anonymous", model.AuthState{}, nil, RedirectLogin},
		{"wrong role", authenticated(model.RoleLabStaff), []model.Role{model.RoleDoctor, model.RoleAdmin}, RedirectUnauthorized},
		{"allowed role", authenticated(model.RoleDoctor), []model.Role{model.RoleDoctor, model.RoleAdmin}, Allow},
		{"any authenticated", authenticated(model.RolePharmacyStaff), nil, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.roles...))
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		state        model.AuthState
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{"loading", model.AuthState{Loading: true}, http.StatusAccepted, "", `{"loading":true}`},
		{"anonymous", model.AuthState{}, http.StatusSeeOther, LoginPath, ""},
		{"lab staff on admin page", authenticated(model.RoleLabStaff), http.StatusSeeOther, UnauthorizedPath, ""},
		{"admin", authenticated(model.RoleAdmin), http.StatusOK, "", "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequireRole(staticState(tt.state), model.RoleAdmin)(func(c echo.Context) error {
				return c.String(http.StatusOK, "content")
			})
			require.NoError(t, h(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			} else {
				assert.NotContains(t, rec.Body.String(), "content")
			}
		})
	}
}
