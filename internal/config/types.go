package config

import (
	"fmt"

	"vicare/internal/auth"
)

// DefaultAPIURL is the ViCare IoT REST API base.
const DefaultAPIURL = "https://api.viessmann-climatesolutions.com/iot/v2"

// Config is the client configuration. It is assembled once at startup from
// the config file and environment overrides and not mutated afterwards.
type Config struct {
	// ClientID identifies the application at the identity provider.
	// Required unless AccessToken is supplied.
	ClientID string `yaml:"clientId"`

	// ClientSecret enables the refresh and password grants. Optional; the
	// interactive PKCE flow works without it.
	ClientSecret string `yaml:"clientSecret,omitempty"`

	// AccessToken, when set, is used as-is and never refreshed.
	AccessToken string `yaml:"accessToken,omitempty"`

	// RefreshToken optionally seeds the refresh grant.
	RefreshToken string `yaml:"refreshToken,omitempty"`

	// APIURL overrides the REST API base.
	APIURL string `yaml:"apiUrl,omitempty"`

	// RedirectPort is the loopback callback port. It must match the
	// redirect URI registered with the identity provider.
	RedirectPort int `yaml:"redirectPort,omitempty"`

	// Scope overrides the requested OAuth2 scope.
	Scope string `yaml:"scope,omitempty"`

	// TokenFile overrides where the token record is persisted.
	TokenFile string `yaml:"tokenFile,omitempty"`
}

// GetDefaultConfig returns the built-in defaults applied before the file
// and environment are consulted.
func GetDefaultConfig() Config {
	return Config{
		APIURL:       DefaultAPIURL,
		RedirectPort: auth.DefaultCallbackPort,
		Scope:        auth.DefaultScope,
		TokenFile:    auth.DefaultTokenFile,
	}
}

// Validate checks that the configuration can drive at least one
// authentication path.
func (c Config) Validate() error {
	if c.ClientID == "" && c.AccessToken == "" {
		return fmt.Errorf("clientId is required (or supply a pre-issued accessToken)")
	}
	if c.RedirectPort < 1 || c.RedirectPort > 65535 {
		return fmt.Errorf("redirectPort %d is out of range", c.RedirectPort)
	}
	return nil
}

// AuthConfig translates the client configuration into the authenticator's
// config. The caller wires OnAuthURL separately.
func (c Config) AuthConfig() auth.Config {
	return auth.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Scope:        c.Scope,
		CallbackPort: c.RedirectPort,
	}
}
