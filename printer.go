package lianke

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// PrinterType filters the printer list by connection type.
type PrinterType int

const (
	PrinterTypeUSB     PrinterType = 1
	PrinterTypeNetwork PrinterType = 2
	PrinterTypeAll     PrinterType = 3
)

// ErrNoPrinter is returned when the box reports no printer of the requested
// type.
var ErrNoPrinter = errors.New("lianke: no printer connected")

// Printer represents a printer attached to the print box. The hash ID is the
// opaque reference every job-related call expects as printerHash.
type Printer struct {
	HashID string `json:"hash_id"`
	Model  string `json:"printerModel,omitempty"`
	Port   string `json:"printerPort,omitempty"`
	Status string `json:"printerStatus,omitempty"`
	Online int    `json:"online,omitempty"`
}

// PrinterListData is the payload of a printer list call.
type PrinterListData struct {
	Row   []Printer `json:"row"`
	Total int       `json:"total"`
}

// PrinterList retrieves the printers attached to the device, filtered by
// connection type.
func (c *Client) PrinterList(ctx context.Context, printerType PrinterType) (*PrinterListData, error) {
	params := url.Values{}
	params.Set("printerType", strconv.Itoa(int(printerType)))

	var listResp struct {
		Response
		Data PrinterListData `json:"data"`
	}
	if err := c.get(ctx, printerListEndpoint, params, &listResp); err != nil {
		return nil, fmt.Errorf("getting printer list: %w", err)
	}
	if err := listResp.Err(); err != nil {
		return nil, err
	}

	return &listResp.Data, nil
}

// PrinterParams retrieves the parameter options a printer supports (paper
// sizes, color modes, duplex and so on).
func (c *Client) PrinterParams(ctx context.Context, printerHash string) (map[string]any, error) {
	params := url.Values{}
	params.Set("printerHash", printerHash)

	var paramsResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, printerParamsEndpoint, params, &paramsResp); err != nil {
		return nil, fmt.Errorf("getting printer params: %w", err)
	}
	if err := paramsResp.Err(); err != nil {
		return nil, err
	}

	return paramsResp.Data, nil
}

// PrinterStatus retrieves the real-time state of a printer (out of paper,
// paper jam, cover open and so on).
func (c *Client) PrinterStatus(ctx context.Context, printerHash string) (map[string]any, error) {
	params := url.Values{}
	params.Set("printerHash", printerHash)

	var statusResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, printerStatusEndpoint, params, &statusResp); err != nil {
		return nil, fmt.Errorf("getting printer status: %w", err)
	}
	if err := statusResp.Err(); err != nil {
		return nil, err
	}

	return statusResp.Data, nil
}

// DefaultPrinter resolves the printer used when a submission names none: the
// first USB printer on the box. Returns ErrNoPrinter when the list is empty.
func (c *Client) DefaultPrinter(ctx context.Context) (string, error) {
	list, err := c.PrinterList(ctx, PrinterTypeUSB)
	if err != nil {
		return "", fmt.Errorf("resolving default printer: %w", err)
	}
	if len(list.Row) == 0 {
		return "", ErrNoPrinter
	}
	return list.Row[0].HashID, nil
}
