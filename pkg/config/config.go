// Package config provides layered configuration for the weblet server.
//
// Configuration is loaded in order:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (WEBLET_ prefix)
//  4. Validation
package config

import "time"

// Config holds all configuration for the server command.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Static  StaticConfig  `yaml:"static"`
	Auth    AuthConfig    `yaml:"auth"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`          // default: "localhost"
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s, 0 disables
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 30s, 0 disables
}

// StaticConfig holds static file serving settings.
type StaticConfig struct {
	DocumentRoot string `yaml:"document_root"` // default: "./public"
	IndexFile    string `yaml:"index_file"`    // default: "index.html"
	Listings     bool   `yaml:"listings"`      // default: true
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type    string         `yaml:"type"`     // "none", "apikey", or "jwt", default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"` // entries for type=apikey
	JWT     JWTConfig      `yaml:"jwt"`      // settings for type=jwt
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	Subject string `yaml:"subject"`
}

// JWTConfig holds HS256 token validation settings.
type JWTConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error", default: "info"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Static: StaticConfig{
			DocumentRoot: "./public",
			IndexFile:    "index.html",
			Listings:     true,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
