package core

import "time"

// ExceptionType classifies a detected data-quality issue.
type ExceptionType string

// Exception type constants.
const (
	ExceptionStaleQuote        ExceptionType = "stale_quote"
	ExceptionExpiredAssumption ExceptionType = "expired_assumption"
	ExceptionMissingData       ExceptionType = "missing_data"
)

// Valid reports whether t is a known exception type.
func (t ExceptionType) Valid() bool {
	switch t {
	case ExceptionStaleQuote, ExceptionExpiredAssumption, ExceptionMissingData:
		return true
	}
	return false
}

// Severity indicates how prominently an exception should be surfaced.
// It is informational only and drives no escalation.
type Severity string

// Severity constants.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Exception is a flagged data-quality or business-rule issue tied to a
// scope. Resolution is one-way: there is no un-resolve.
type Exception struct {
	ID             string
	OwnerID        string
	Type           ExceptionType
	Severity       Severity
	Message        string
	Scope          Scope
	DetectedAt     time.Time
	Resolved       bool
	ResolutionNote string
	ResolvedAt     *time.Time
}
