package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

type statusBody[S ~string] struct {
	Status S `json:"status"`
}

// ListPrescriptions returns one page of prescriptions.
func (c *Client) ListPrescriptions(ctx context.Context, page, limit int) Result[[]model.Prescription] {
	return send[[]model.Prescription](ctx, c, http.MethodGet, "/prescriptions", "Failed to get prescriptions", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
		})
	})
}

// GetPrescription returns a single prescription.
func (c *Client) GetPrescription(ctx context.Context, id string) Result[model.Prescription] {
	return send[model.Prescription](ctx, c, http.MethodGet, "/prescriptions/{id}", "Failed to get prescription", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
}

// CreatePrescription submits a new prescription. The backend assigns the
// ids and initial statuses of the prescription and its rows.
func (c *Client) CreatePrescription(ctx context.Context, p model.NewPrescription) Result[model.Prescription] {
	return send[model.Prescription](ctx, c, http.MethodPost, "/prescriptions", "Failed to create prescription", func(r *resty.Request) {
		r.SetBody(p)
	})
}

// UpdatePrescriptionStatus moves a prescription to status.
func (c *Client) UpdatePrescriptionStatus(ctx context.Context, id string, status model.PrescriptionStatus) Result[model.Prescription] {
	return send[model.Prescription](ctx, c, http.MethodPatch, "/prescriptions/{id}/status", "Failed to update prescription status", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(statusBody[model.PrescriptionStatus]{Status: status})
	})
}
