package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ExportRequest asks the platform's job runner to write a finished CSV table
// to a named folder under a fixed filename prefix.
type ExportRequest struct {
	Folder         string `json:"folder"`
	FilenamePrefix string `json:"filename_prefix"`
	ContentType    string `json:"content_type"`
	Data           string `json:"data"`
}

// ExportJob is the runner's acknowledgement of a submitted job. Completion,
// retry, and failure reporting stay on the runner's side; callers only keep
// the ID for the operator.
type ExportJob struct {
	ID    string `json:"job_id"`
	State string `json:"state"`
}

// SubmitExport hands the rendered CSV to the export job runner. The call is
// fire-and-forget: a successful return means the job was accepted, nothing
// more.
func (c *Client) SubmitExport(ctx context.Context, folder, filenamePrefix string, csvData []byte) (ExportJob, error) {
	if folder == "" || filenamePrefix == "" {
		return ExportJob{}, fmt.Errorf("export needs a folder and a filename prefix")
	}

	body, err := json.Marshal(ExportRequest{
		Folder:         folder,
		FilenamePrefix: filenamePrefix,
		ContentType:    "text/csv",
		Data:           string(csvData),
	})
	if err != nil {
		return ExportJob{}, fmt.Errorf("encode export request: %w", err)
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/exports", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := c.do(ctx, buildRequest)
	if err != nil {
		return ExportJob{}, fmt.Errorf("submit export: %w", err)
	}
	defer resp.Body.Close()

	var job ExportJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return ExportJob{}, fmt.Errorf("decode export acknowledgement: %w", err)
	}
	if job.ID == "" {
		return ExportJob{}, fmt.Errorf("export runner returned no job id")
	}
	return job, nil
}
