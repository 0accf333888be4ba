package lianke

import (
	"context"
	"fmt"
)

// DeviceInfo retrieves information about the print box itself: firmware,
// network state and attached peripherals. The payload is returned verbatim.
func (c *Client) DeviceInfo(ctx context.Context) (map[string]any, error) {
	var infoResp struct {
		Response
		Data map[string]any `json:"data"`
	}
	if err := c.get(ctx, deviceInfoEndpoint, nil, &infoResp); err != nil {
		return nil, fmt.Errorf("getting device info: %w", err)
	}
	if err := infoResp.Err(); err != nil {
		return nil, err
	}

	return infoResp.Data, nil
}
