package config

import "strings"

// Snapshot is an immutable view of the process environment taken at
// startup. Flag functions read it instead of calling os.Getenv so flag
// behavior is testable and free of hidden global state.
type Snapshot map[string]string

// SnapshotFromEnviron builds a Snapshot from os.Environ()-style
// "KEY=VALUE" pairs.
func SnapshotFromEnviron(environ []string) Snapshot {
	s := make(Snapshot, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			s[k] = v
		}
	}
	return s
}

// truthy reports whether a flag value means enabled.
func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ForecastWorkbenchEnabled reports whether the forecast workbench is
// available. It defaults to enabled outside production; the variable
// overrides the default in either direction.
func ForecastWorkbenchEnabled(s Snapshot, envName string) bool {
	if v, ok := s["SLA_FLAG_FORECAST_WORKBENCH"]; ok {
		return truthy(v)
	}
	return envName != "production"
}

// CostSimulationEnabled reports whether the cost-simulation workbench
// is available. It defaults to disabled unless explicitly turned on.
func CostSimulationEnabled(s Snapshot) bool {
	v, ok := s["SLA_FLAG_COST_SIMULATION"]
	return ok && truthy(v)
}

// ShippingBookingEnabled reports whether the shipping-booking tab is
// available. It defaults to disabled unless explicitly turned on.
func ShippingBookingEnabled(s Snapshot) bool {
	v, ok := s["SLA_FLAG_SHIPPING_BOOKING"]
	return ok && truthy(v)
}

// Flags is the resolved feature-flag set, computed once at startup and
// injected with the rest of the configuration.
type Flags struct {
	ForecastWorkbench bool
	CostSimulation    bool
	ShippingBooking   bool
}

// ComputeFlags resolves every flag against an environment snapshot.
func ComputeFlags(s Snapshot, envName string) Flags {
	return Flags{
		ForecastWorkbench: ForecastWorkbenchEnabled(s, envName),
		CostSimulation:    CostSimulationEnabled(s),
		ShippingBooking:   ShippingBookingEnabled(s),
	}
}
