// Package config holds the application settings shared by the CLI
// commands. Settings come from an optional YAML or JSON file; anything
// unset falls back to a default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// IdentityURL is the base URL of the identity service.
	IdentityURL string `yaml:"identityUrl" json:"identityUrl"`
	// StorageDir holds the persisted credential; empty selects the
	// per-user default under the home directory.
	StorageDir     string `yaml:"storageDir" json:"storageDir"`
	TimeoutSeconds int    `yaml:"timeout" json:"timeout"`
	MaxRetries     uint   `yaml:"maxRetries" json:"maxRetries"`
}

func Default() Config {
	return Config{
		IdentityURL:    "https://localhost:8443",
		TimeoutSeconds: 30,
		MaxRetries:     3,
	}
}

// Load reads the config file at path, layered over the defaults. A
// missing file is not an error; an unreadable or malformed one is.
// Format follows the extension: .json is JSON, everything else YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	return cfg, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
