package vicare

import (
	"context"
	"fmt"
	"net/url"
)

// Installations lists the installations the account can access. With
// includeGateways set, each installation carries its gateways inline and no
// separate Gateways call is needed.
func (c *Client) Installations(ctx context.Context, includeGateways bool) ([]Installation, error) {
	path := "/equipment/installations"
	if includeGateways {
		path += "?includeGateways=true"
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Installation](body)
}

// Gateways lists the gateways of one installation.
func (c *Client) Gateways(ctx context.Context, installationID int) ([]Gateway, error) {
	path := fmt.Sprintf("/equipment/installations/%d/gateways", installationID)

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Gateway](body)
}

// Devices lists the devices behind one gateway.
func (c *Client) Devices(ctx context.Context, installationID int, gatewaySerial string) ([]Device, error) {
	path := fmt.Sprintf("/equipment/installations/%d/gateways/%s/devices",
		installationID, url.PathEscape(gatewaySerial))

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Device](body)
}
