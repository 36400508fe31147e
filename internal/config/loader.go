package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/vicare"
	configFileName = "config.yaml"
)

// GetDefaultConfigPathOrPanic returns the per-user configuration directory.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from the given directory's config.yaml,
// layered on the built-in defaults and finished with VICARE_* environment
// overrides. A missing file is not an error; the defaults plus environment
// must still pass Validate.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
		}
		slog.Debug("Loaded configuration file", "path", configFilePath)
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("No config.yaml found, using defaults", "path", configFilePath)
	default:
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// applyEnvOverrides layers VICARE_* environment variables over the file
// values. The environment always wins.
func applyEnvOverrides(c *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&c.ClientID, "VICARE_CLIENT_ID")
	setString(&c.ClientSecret, "VICARE_CLIENT_SECRET")
	setString(&c.AccessToken, "VICARE_ACCESS_TOKEN")
	setString(&c.RefreshToken, "VICARE_REFRESH_TOKEN")
	setString(&c.APIURL, "VICARE_API_URL")
	setString(&c.Scope, "VICARE_SCOPE")
	setString(&c.TokenFile, "VICARE_TOKEN_FILE")

	if v, ok := os.LookupEnv("VICARE_REDIRECT_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("Ignoring non-numeric VICARE_REDIRECT_PORT", "value", v)
			return
		}
		c.RedirectPort = port
	}
}
