package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"vicare/pkg/vicare"
)

func TestRenderer_Installations(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Installations([]vicare.Installation{
		{
			ID:               1001,
			Description:      "Home",
			Address:          vicare.Address{City: "Allendorf"},
			AggregatedStatus: "WorksProperly",
			Gateways:         []vicare.Gateway{{Serial: "7633107093013212"}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "1001")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Allendorf")
	assert.Contains(t, out, "WorksProperly")
	assert.Contains(t, out, "7633107093013212")
}

func TestRenderer_InstallationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Installations(nil)

	assert.Contains(t, buf.String(), "No installations found")
}

func TestRenderer_Devices(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Devices([]vicare.Device{
		{ID: "0", ModelID: "E3_Vitodens_100", DeviceType: "heating", Status: "Online", Roles: []string{"type:boiler"}},
	})

	out := buf.String()
	assert.Contains(t, out, "E3_Vitodens_100")
	assert.Contains(t, out, "heating")
	assert.Contains(t, out, "type:boiler")
}

func TestRenderer_Features(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Features([]vicare.Feature{
		{
			Name:      "heating.boiler.temperature",
			IsEnabled: true,
			IsReady:   true,
			Properties: map[string]vicare.FeatureProperty{
				"value": {Type: "number", Value: 54.3, Unit: "celsius"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "heating.boiler.temperature")
	assert.Contains(t, out, "54.3 celsius")
}

func TestRenderer_Feature(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Feature(&vicare.Feature{
		Name:      "heating.circuits.0.operating.programs.normal",
		IsEnabled: true,
		Properties: map[string]vicare.FeatureProperty{
			"temperature": {Type: "number", Value: 21, Unit: "celsius"},
		},
		Commands: map[string]vicare.CommandDescriptor{
			"setTemperature": {
				IsExecutable: true,
				Params: map[string]vicare.CommandParam{
					"targetTemperature": {Type: "number", Required: true},
				},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "heating.circuits.0.operating.programs.normal")
	assert.Contains(t, out, "temperature")
	assert.Contains(t, out, "setTemperature")
	assert.Contains(t, out, "targetTemperature (required)")
}

func TestFeatureValue_Fallbacks(t *testing.T) {
	// "value" wins when present.
	f := vicare.Feature{Properties: map[string]vicare.FeatureProperty{
		"value":  {Value: 42, Unit: "celsius"},
		"active": {Value: true},
	}}
	assert.Equal(t, "42 celsius", featureValue(f))

	// "active" beats an arbitrary property.
	f = vicare.Feature{Properties: map[string]vicare.FeatureProperty{
		"active": {Value: true},
		"zzz":    {Value: "ignored"},
	}}
	assert.Equal(t, "true", featureValue(f))

	// No properties at all.
	assert.Equal(t, "-", featureValue(vicare.Feature{}))
}
