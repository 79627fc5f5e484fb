package apiclient

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

// UpdateMedicineStatus moves a single medicine to status.
func (c *Client) UpdateMedicineStatus(ctx context.Context, prescriptionID, medicineID string, status model.MedicineStatus) Result[model.Medicine] {
	return send[model.Medicine](ctx, c, http.MethodPatch, "/prescriptions/{pid}/medicines/{mid}/status", "Failed to update medicine status", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"pid": prescriptionID, "mid": medicineID}).
			SetBody(statusBody[model.MedicineStatus]{Status: status})
	})
}
