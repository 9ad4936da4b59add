package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables overlaid on top of the file. Secrets never belong in
// the yaml file checked into a repo, so the key always wins from the env.
const (
	EnvAPIKey        = "ASKDB_API_KEY"
	EnvBaseURL       = "ASKDB_BASE_URL"
	EnvModel         = "ASKDB_MODEL"
	EnvGraphPassword = "ASKDB_GRAPH_PASSWORD"
	EnvSearchAPIKey  = "ASKDB_SEARCH_API_KEY"
)

// Load reads the yaml config at path (if non-empty), overlays environment
// variables, and validates the result. The returned error is a
// ValidationErrors when the config is structurally fine but incomplete.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file failed, err: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file failed, err: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvGraphPassword); v != "" {
		c.Backends.Graph.Password = v
	}
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.Backends.SearchIndex.APIKey = v
	}
}
