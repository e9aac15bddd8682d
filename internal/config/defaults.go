package config

import "time"

// Default configuration values.
const (
	DefaultEnv          = "development"
	DefaultPort         = 4400
	DefaultArtifactsDir = "artifacts"
	DefaultDriver       = "sqlite"
	DefaultDSN          = "file:sla.db"
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxBackoff   = 5 * time.Second
)

// defaultMap feeds the koanf confmap provider as the lowest-precedence
// layer.
func defaultMap() map[string]any {
	return map[string]any{
		"env":                  DefaultEnv,
		"server.port":          DefaultPort,
		"server.artifacts_dir": DefaultArtifactsDir,
		"database.driver":      DefaultDriver,
		"database.dsn":         DefaultDSN,
		"worker.enabled":       true,
		"worker.poll_interval": DefaultPollInterval,
		"worker.max_backoff":   DefaultMaxBackoff,
	}
}

// ApplyDefaults fills zero values that survived unmarshalling, e.g.
// when a config file sets a section but leaves fields empty.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Env == "" {
		c.Env = DefaultEnv
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ArtifactsDir == "" {
		c.Server.ArtifactsDir = DefaultArtifactsDir
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}
	if c.Worker.PollInterval == 0 {
		c.Worker.PollInterval = DefaultPollInterval
	}
	if c.Worker.MaxBackoff == 0 {
		c.Worker.MaxBackoff = DefaultMaxBackoff
	}
}
