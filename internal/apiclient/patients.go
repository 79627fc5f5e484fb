package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

// ListPatients returns one page of patients. An empty search lists all.
func (c *Client) ListPatients(ctx context.Context, page, limit int, search string) Result[[]model.Patient] {
	return send[[]model.Patient](ctx, c, http.MethodGet, "/patients", "Failed to get patients", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"page":   strconv.Itoa(page),
			"limit":  strconv.Itoa(limit),
			"search": search,
		})
	})
}

// GetPatient returns a single patient.
func (c *Client) GetPatient(ctx context.Context, id string) Result[model.Patient] {
	return send[model.Patient](ctx, c, http.MethodGet, "/patients/{id}", "Failed to get patient", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
}

// CreatePatient registers a patient.
func (c *Client) CreatePatient(ctx context.Context, p model.NewPatient) Result[model.Patient] {
	return send[model.Patient](ctx, c, http.MethodPost, "/patients", "Failed to create patient", func(r *resty.Request) {
		r.SetBody(p)
	})
}

// PatientHistory returns the prescriptions of a patient.
func (c *Client) PatientHistory(ctx context.Context, id string) Result[[]model.Prescription] {
	return send[[]model.Prescription](ctx, c, http.MethodGet, "/patients/{id}/history", "Failed to get patient history", func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
}
