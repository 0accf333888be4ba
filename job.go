package lianke

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// JobSubmission describes one print job: the target printer, the merged job
// parameters and the document to print. The document is consumed by the call
// and not retained.
type JobSubmission struct {
	PrinterHash string
	Parameters  map[string]any
	Document    *Document
}

// SubmitJob posts the job as a multipart request and returns the service
// payload, which includes the task_id used for polling and cancellation.
func (c *Client) SubmitJob(ctx context.Context, sub *JobSubmission) (map[string]any, error) {
	fields := map[string]string{
		"printerHash": sub.PrinterHash,
	}
	for key, value := range sub.Parameters {
		fields[key] = fmt.Sprint(value)
	}

	var submitResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.postMultipart(ctx, printJobEndpoint, fields, sub.Document, &submitResp); err != nil {
		return nil, fmt.Errorf("submitting job: %w", err)
	}
	if err := submitResp.Err(); err != nil {
		return nil, err
	}

	return submitResp.Data, nil
}

// JobResult retrieves the state of a previously submitted job.
func (c *Client) JobResult(ctx context.Context, taskID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("task_id", taskID)

	var resultResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, printJobEndpoint, params, &resultResp); err != nil {
		return nil, fmt.Errorf("getting job result: %w", err)
	}
	if err := resultResp.Err(); err != nil {
		return nil, err
	}

	return resultResp.Data, nil
}

// CancelJob cancels a queued or running job.
func (c *Client) CancelJob(ctx context.Context, taskID string) error {
	var cancelResp Response
	if err := c.send(ctx, http.MethodDelete, printJobEndpoint, map[string]any{"task_id": taskID}, &cancelResp); err != nil {
		return fmt.Errorf("cancelling job: %w", err)
	}
	return cancelResp.Err()
}
