package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, WEBLET_CONFIG env, ./config.yaml,
//     /etc/weblet/config.yaml)
//  3. Environment variable overrides
//  4. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery
// order. Returns empty string if no config file is found; running with
// pure defaults is supported.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("WEBLET_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/weblet/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps WEBLET_* environment variables onto config
// fields, after the YAML layer so the environment wins.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEBLET_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WEBLET_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WEBLET_DOCUMENT_ROOT"); v != "" {
		cfg.Static.DocumentRoot = v
	}
	if v := os.Getenv("WEBLET_INDEX_FILE"); v != "" {
		cfg.Static.IndexFile = v
	}
	if v := os.Getenv("WEBLET_LISTINGS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Static.Listings = enabled
		}
	}
	if v := os.Getenv("WEBLET_AUTH"); v != "" {
		cfg.Auth.Type = v
	}
	if v := os.Getenv("WEBLET_JWT_SECRET"); v != "" {
		cfg.Auth.JWT.Secret = v
	}
	if v := os.Getenv("WEBLET_METRICS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("WEBLET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
