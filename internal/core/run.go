// Package core defines the shared domain types for the SLA service.
// It is kept dependency-light so every other package can import it.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus represents the lifecycle status of a run.
type RunStatus string

// Run status constants.
const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
	RunStatusPublished RunStatus = "published"
)

// Valid reports whether s is a known run status.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusQueued, RunStatusRunning, RunStatusSucceeded, RunStatusFailed, RunStatusPublished:
		return true
	}
	return false
}

// Terminal reports whether a run in this status has stopped executing.
// A succeeded run may still transition to published.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusPublished:
		return true
	}
	return false
}

// CanTransition reports whether the one-directional lifecycle allows
// moving from one status to another. The only exit from a terminal
// status is succeeded -> published.
func CanTransition(from, to RunStatus) bool {
	switch from {
	case RunStatusQueued:
		return to == RunStatusRunning
	case RunStatusRunning:
		return to == RunStatusSucceeded || to == RunStatusFailed
	case RunStatusSucceeded:
		return to == RunStatusPublished
	}
	return false
}

// RunKind distinguishes the two workbench computations that share the
// run lifecycle.
type RunKind string

// Run kind constants.
const (
	RunKindForecast       RunKind = "forecast"
	RunKindCostProjection RunKind = "cost_projection"
)

// Valid reports whether k is a known run kind.
func (k RunKind) Valid() bool {
	return k == RunKindForecast || k == RunKindCostProjection
}

// Scope parameterizes a run or a list view: which slice of the supply
// chain the computation covers and at what confidence level.
type Scope struct {
	Period     string `json:"period"`
	Category   string `json:"category"`
	Supplier   string `json:"supplier"`
	Confidence int    `json:"confidence"`
}

// Run represents one tracked execution of a forecast or cost-projection
// computation. Every read and write is scoped to OwnerID.
type Run struct {
	ID          string
	OwnerID     string
	Kind        RunKind
	Scope       Scope
	Status      RunStatus
	Metrics     map[string]string
	Error       string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	PublishedAt *time.Time
}

// ProjectionRow is a single computed result row belonging to a run.
// Quantities and money use exact decimal arithmetic.
type ProjectionRow struct {
	Period   int
	Category string
	Supplier string
	Demand   decimal.Decimal
	UnitCost decimal.Decimal
	Spend    decimal.Decimal
}
