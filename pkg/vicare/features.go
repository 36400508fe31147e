package vicare

import (
	"context"
	"fmt"
	"net/url"
)

// Features lists every data point the device currently exposes.
func (c *Client) Features(ctx context.Context, installationID int, gatewaySerial, deviceID string) ([]Feature, error) {
	path := fmt.Sprintf("/features/installations/%d/gateways/%s/devices/%s/features",
		installationID, url.PathEscape(gatewaySerial), url.PathEscape(deviceID))

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeData[[]Feature](body)
}

// Feature fetches a single named data point, e.g.
// heating.boiler.temperature.
func (c *Client) Feature(ctx context.Context, installationID int, gatewaySerial, deviceID, name string) (*Feature, error) {
	path := fmt.Sprintf("/features/installations/%d/gateways/%s/devices/%s/features/%s",
		installationID, url.PathEscape(gatewaySerial), url.PathEscape(deviceID), url.PathEscape(name))

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	feature, err := decodeData[Feature](body)
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

// ExecuteCommand invokes a command on a feature, e.g. setTargetTemperature
// on heating.circuits.0.operating.programs.normal. Params are passed through
// to the vendor as-is; the API validates them against the command's
// constraints.
func (c *Client) ExecuteCommand(ctx context.Context, installationID int, gatewaySerial, deviceID, feature, command string, params map[string]any) (*CommandResult, error) {
	path := fmt.Sprintf("/features/installations/%d/gateways/%s/devices/%s/features/%s/commands/%s",
		installationID, url.PathEscape(gatewaySerial), url.PathEscape(deviceID),
		url.PathEscape(feature), url.PathEscape(command))

	if params == nil {
		params = map[string]any{}
	}

	body, err := c.post(ctx, path, params)
	if err != nil {
		return nil, err
	}

	result, err := decodeData[CommandResult](body)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
