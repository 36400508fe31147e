package vicare

import "time"

// Installation is a registered heating installation.
type Installation struct {
	ID               int       `json:"id"`
	Description      string    `json:"description"`
	Address          Address   `json:"address"`
	RegisteredAt     time.Time `json:"registeredAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	AggregatedStatus string    `json:"aggregatedStatus"`

	// Gateways is populated when the installation list is requested with
	// gateways included.
	Gateways []Gateway `json:"gateways,omitempty"`
}

// Address is the physical location of an installation.
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// Gateway is a communication gateway attached to an installation.
type Gateway struct {
	Serial              string    `json:"serial"`
	Version             string    `json:"version"`
	AutoUpdate          bool      `json:"autoUpdate"`
	CreatedAt           time.Time `json:"createdAt"`
	ProducedAt          time.Time `json:"producedAt"`
	LastStatusChangedAt time.Time `json:"lastStatusChangedAt"`
	AggregatedStatus    string    `json:"aggregatedStatus"`
	GatewayType         string    `json:"gatewayType"`
	InstallationID      int       `json:"installationId"`
}

// Device is an appliance behind a gateway.
type Device struct {
	ID            string    `json:"id"`
	GatewaySerial string    `json:"gatewaySerial"`
	BoilerSerial  string    `json:"boilerSerial,omitempty"`
	ModelID       string    `json:"modelId"`
	DeviceType    string    `json:"deviceType"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	Roles         []string  `json:"roles"`
}

// Feature is a single data point or capability of a device, e.g.
// heating.boiler.temperature.
type Feature struct {
	Name       string                       `json:"feature"`
	IsEnabled  bool                         `json:"isEnabled"`
	IsReady    bool                         `json:"isReady"`
	Timestamp  time.Time                    `json:"timestamp"`
	APIVersion int                          `json:"apiVersion"`
	URI        string                       `json:"uri"`
	Properties map[string]FeatureProperty   `json:"properties"`
	Commands   map[string]CommandDescriptor `json:"commands"`
}

// FeatureProperty is one typed value of a feature.
type FeatureProperty struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// CommandDescriptor describes a command a feature accepts.
type CommandDescriptor struct {
	URI          string                  `json:"uri"`
	Name         string                  `json:"name"`
	IsExecutable bool                    `json:"isExecutable"`
	Params       map[string]CommandParam `json:"params"`
}

// CommandParam describes one parameter of a feature command.
type CommandParam struct {
	Type        string         `json:"type"`
	Required    bool           `json:"required"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

// CommandResult is the API's acknowledgement of an executed command.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
