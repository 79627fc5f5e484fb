package apiclient

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

// LoginData is the payload of a successful login.
type LoginData struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) Result[LoginData] {
	return send[LoginData](ctx, c, http.MethodPost, "/auth/login", "Failed to login", func(r *resty.Request) {
		r.SetBody(credentials{Username: username, Password: password})
	})
}

// Logout ends the session on the backend.
func (c *Client) Logout(ctx context.Context) Result[Empty] {
	return send[Empty](ctx, c, http.MethodPost, "/auth/logout", "Failed to logout", nil)
}

// CurrentUser returns the user owning the current token.
func (c *Client) CurrentUser(ctx context.Context) Result[model.User] {
	return send[model.User](ctx, c, http.MethodGet, "/auth/me", "Failed to get current user", nil)
}
