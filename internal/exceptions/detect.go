// Package exceptions lists and resolves data-quality issues, and runs
// the detection sweep that raises them after each successful run.
package exceptions

import (
	"fmt"
	"strconv"

	"github.com/slahq/sla/internal/core"
)

// Detection thresholds. Quotes are assumed refreshed every
// staleQuotePeriods; assumptions below minAssumptionConfidence are
// treated as expired.
const (
	staleQuotePeriods       = 18
	minAssumptionConfidence = 70
)

// Detect inspects a finished run and its rows and returns the
// exceptions to raise. The sweep is deliberately conservative: one
// exception per rule per run, owner and scope copied from the run.
func Detect(run *core.Run, rows []core.ProjectionRow) []*core.Exception {
	var out []*core.Exception

	raise := func(typ core.ExceptionType, severity core.Severity, message string) {
		out = append(out, &core.Exception{
			OwnerID:  run.OwnerID,
			Type:     typ,
			Severity: severity,
			Message:  message,
			Scope:    run.Scope,
		})
	}

	if len(rows) == 0 {
		raise(core.ExceptionMissingData, core.SeverityHigh,
			fmt.Sprintf("no projection rows for category %q and supplier %q",
				run.Scope.Category, run.Scope.Supplier))
	}

	if run.Scope.Confidence < minAssumptionConfidence {
		raise(core.ExceptionExpiredAssumption, core.SeverityMedium,
			fmt.Sprintf("confidence %d is below the %d assumption floor",
				run.Scope.Confidence, minAssumptionConfidence))
	}

	if periods, err := strconv.Atoi(run.Scope.Period); err == nil && periods > staleQuotePeriods {
		raise(core.ExceptionStaleQuote, core.SeverityLow,
			fmt.Sprintf("projection window of %d periods exceeds the %d-period quote refresh cycle",
				periods, staleQuotePeriods))
	}

	return out
}
