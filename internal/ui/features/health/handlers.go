// Package health exposes the service health endpoint used by load
// balancers and the dev dashboard.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/slahq/sla/internal/config"
	"github.com/slahq/sla/internal/ui/features/common"
	"github.com/slahq/sla/internal/version"
)

// Checks reports each configuration probe individually so a failing
// deploy shows which prerequisite is missing.
type Checks struct {
	DatabaseConfigured bool `json:"databaseConfigured"`
	AuthConfigured     bool `json:"authConfigured"`
}

// Response is the health endpoint payload.
type Response struct {
	OK        bool     `json:"ok"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Checks    Checks   `json:"checks"`
	Errors    []string `json:"errors,omitempty"`
}

// Handlers provides the health endpoint.
type Handlers struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{cfg: cfg, logger: logger.With("component", "health")}
}

// Health reports whether the service has its prerequisites configured.
// Healthy is 200, degraded is 503; the body carries the same shape
// either way.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	checks := Checks{
		DatabaseConfigured: h.cfg.DatabaseConfigured(),
		AuthConfigured:     h.cfg.AuthConfigured(),
	}

	resp := Response{
		OK:        checks.DatabaseConfigured && checks.AuthConfigured,
		Version:   version.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if !checks.DatabaseConfigured {
		resp.Errors = append(resp.Errors, "database not configured")
	}
	if !checks.AuthConfigured {
		resp.Errors = append(resp.Errors, "auth not configured")
	}

	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
		h.logger.Warn("health check degraded", slog.Any("errors", resp.Errors))
	}
	common.WriteJSON(w, status, resp)
}
