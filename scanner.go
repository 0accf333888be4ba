package lianke

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Scanner represents a scanner attached to the print box.
type Scanner struct {
	ScanningID string `json:"scanningId"`
	Model      string `json:"scannerModel,omitempty"`
	Status     string `json:"scannerStatus,omitempty"`
}

// ScannerListData is the payload of a scanner list call.
type ScannerListData struct {
	Row   []Scanner `json:"row"`
	Total int       `json:"total"`
}

// ScannerList retrieves the scanners attached to the device.
func (c *Client) ScannerList(ctx context.Context) (*ScannerListData, error) {
	var listResp struct {
		Response
		Data ScannerListData `json:"data"`
	}
	if err := c.get(ctx, scannerListEndpoint, nil, &listResp); err != nil {
		return nil, fmt.Errorf("getting scanner list: %w", err)
	}
	if err := listResp.Err(); err != nil {
		return nil, err
	}

	return &listResp.Data, nil
}

// ScannerStatus retrieves the real-time state of a scanner.
func (c *Client) ScannerStatus(ctx context.Context, scanningID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("scanningId", scanningID)

	var statusResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, scannerStatusEndpoint, params, &statusResp); err != nil {
		return nil, fmt.Errorf("getting scanner status: %w", err)
	}
	if err := statusResp.Err(); err != nil {
		return nil, err
	}

	return statusResp.Data, nil
}

// ScannerParams retrieves the parameter options a scanner supports.
func (c *Client) ScannerParams(ctx context.Context, scanningID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("scanningId", scanningID)

	var paramsResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, scannerParamsEndpoint, params, &paramsResp); err != nil {
		return nil, fmt.Errorf("getting scanner params: %w", err)
	}
	if err := paramsResp.Err(); err != nil {
		return nil, err
	}

	return paramsResp.Data, nil
}

// CreateScanJob starts a scan on the given scanner. Extra parameters are
// passed through to the service untouched.
func (c *Client) CreateScanJob(ctx context.Context, scanningID string, params map[string]any) (map[string]any, error) {
	body := map[string]any{"scanningId": scanningID}
	for key, value := range params {
		body[key] = value
	}

	var createResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, scanJobEndpoint, body, &createResp); err != nil {
		return nil, fmt.Errorf("creating scan job: %w", err)
	}
	if err := createResp.Err(); err != nil {
		return nil, err
	}

	return createResp.Data, nil
}

// QueryScanJob retrieves the state of a scan job.
func (c *Client) QueryScanJob(ctx context.Context, taskID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("task_id", taskID)

	var queryResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, scanJobEndpoint, params, &queryResp); err != nil {
		return nil, fmt.Errorf("querying scan job: %w", err)
	}
	if err := queryResp.Err(); err != nil {
		return nil, err
	}

	return queryResp.Data, nil
}

// DeleteScanJob deletes a scan job.
func (c *Client) DeleteScanJob(ctx context.Context, taskID string) error {
	var deleteResp Response
	if err := c.send(ctx, http.MethodDelete, scanJobEndpoint, map[string]any{"task_id": taskID}, &deleteResp); err != nil {
		return fmt.Errorf("deleting scan job: %w", err)
	}
	return deleteResp.Err()
}
