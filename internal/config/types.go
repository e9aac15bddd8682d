// Package config loads and validates the SLA service configuration.
// Precedence is defaults, then an optional sla.yaml file, then SLA_*
// environment variables.
package config

import "time"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	SessionSecret string `koanf:"session_secret"`
	ArtifactsDir  string `koanf:"artifacts_dir"`
}

// DatabaseConfig holds the relational backend settings. Driver is
// "postgres" for the hosted backend or "sqlite" for local development.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

// WorkerConfig holds run-worker settings.
type WorkerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	PollInterval time.Duration `koanf:"poll_interval"`
	MaxBackoff   time.Duration `koanf:"max_backoff"`
}

// Config is the full service configuration, constructed once at
// startup and passed in explicitly.
type Config struct {
	Env      string         `koanf:"env"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Worker   WorkerConfig   `koanf:"worker"`
	Flags    Flags          `koanf:"-"`

	// Dir is the directory the config was loaded from; the dev config
	// watcher watches the same directory.
	Dir string `koanf:"-"`
}

// IsDev reports whether the service runs in development mode. The dev
// echo endpoint and config watching are gated on this.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DatabaseConfigured reports whether the database settings are
// present. The health endpoint surfaces this check.
func (c *Config) DatabaseConfigured() bool {
	return c.Database.Driver != "" && c.Database.DSN != ""
}

// AuthConfigured reports whether the session boundary has a secret.
func (c *Config) AuthConfigured() bool {
	return c.Server.SessionSecret != ""
}
