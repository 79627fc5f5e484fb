package apiclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"medidesk/internal/model"
)

// File is an upload attachment held in memory.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadLabReport attaches a result file to a lab report slot. The request
// is multipart with a "file" part and a "notes" field.
func (c *Client) UploadLabReport(ctx context.Context, prescriptionID, reportID string, file File, notes string) Result[model.LabReport] {
	return send[model.LabReport](ctx, c, http.MethodPost, "/prescriptions/{pid}/lab-reports/{rid}/upload", "Failed to upload lab report", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"pid": prescriptionID, "rid": reportID}).
			SetMultipartField("file", file.Name, file.ContentType, bytes.NewReader(file.Content)).
			SetMultipartFormData(map[string]string{"notes": notes})
	})
}

// UpdateLabReportStatus moves a lab report to status.
func (c *Client) UpdateLabReportStatus(ctx context.Context, prescriptionID, reportID string, status model.LabReportStatus) Result[model.LabReport] {
	return send[model.LabReport](ctx, c, http.MethodPatch, "/prescriptions/{pid}/lab-reports/{rid}/status", "Failed to update lab report status", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"pid": prescriptionID, "rid": reportID}).
			SetBody(statusBody[model.LabReportStatus]{Status: status})
	})
}
