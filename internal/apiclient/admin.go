package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

// ListUsers returns one page of staff accounts.
func (c *Client) ListUsers(ctx context.Context, page, limit int) Result[[]model.User] {
	return send[[]model.User](ctx, c, http.MethodGet, "/admin/users", "Failed to get users", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
		})
	})
}

// CreateUser creates a staff account.
func (c *Client) CreateUser(ctx context.Context, u model.NewUser) Result[model.User] {
	return send[model.User](ctx, c, http.MethodPost, "/admin/users", "Failed to create user", func(r *resty.Request) {
		r.SetBody(u)
	})
}

// UpdateUser replaces the editable fields of a staff account.
func (c *Client) UpdateUser(ctx context.Context, id string, patch model.UserUpdate) Result[model.User] {
	return send[model.User](ctx, c, http.MethodPut, "/admin/users/{id}", "Failed to update user", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(patch)
	})
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id string) Result[Empty] {
	return send[Empty](ctx, c, http.MethodDelete, "/admin/users/{id}", "Failed to delete user", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
}
