package exceptions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/core"
)

func detectRun(sc core.Scope) *core.Run {
	return &core.Run{
		ID:      "run-1",
		OwnerID: "user_a",
		Kind:    core.RunKindForecast,
		Scope:   sc,
		Status:  core.RunStatusSucceeded,
	}
}

func someRows() []core.ProjectionRow {
	return []core.ProjectionRow{{
		Period:   1,
		Category: "electronics",
		Supplier: "acme",
		Demand:   decimal.NewFromInt(100),
		UnitCost: decimal.NewFromInt(2),
		Spend:    decimal.NewFromInt(200),
	}}
}

func TestDetect_CleanRunRaisesNothing(t *testing.T) {
	run := detectRun(core.Scope{Period: "12", Category: "electronics", Supplier: "acme", Confidence: 85})

	assert.Empty(t, Detect(run, someRows()))
}

func TestDetect_MissingData(t *testing.T) {
	run := detectRun(core.Scope{Period: "12", Category: "unobtainium", Supplier: "acme", Confidence: 85})

	out := Detect(run, nil)
	require.Len(t, out, 1)
	assert.Equal(t, core.ExceptionMissingData, out[0].Type)
	assert.Equal(t, core.SeverityHigh, out[0].Severity)
	assert.Equal(t, "user_a", out[0].OwnerID)
	assert.Equal(t, run.Scope, out[0].Scope)
}

func TestDetect_ExpiredAssumption(t *testing.T) {
	run := detectRun(core.Scope{Period: "12", Category: "electronics", Supplier: "acme", Confidence: 60})

	out := Detect(run, someRows())
	require.Len(t, out, 1)
	assert.Equal(t, core.ExceptionExpiredAssumption, out[0].Type)
	assert.Equal(t, core.SeverityMedium, out[0].Severity)
}

func TestDetect_StaleQuote(t *testing.T) {
	run := detectRun(core.Scope{Period: "24", Category: "electronics", Supplier: "acme", Confidence: 85})

	out := Detect(run, someRows())
	require.Len(t, out, 1)
	assert.Equal(t, core.ExceptionStaleQuote, out[0].Type)
	assert.Equal(t, core.SeverityLow, out[0].Severity)
}

func TestDetect_MultipleRules(t *testing.T) {
	run := detectRun(core.Scope{Period: "24", Category: "unobtainium", Supplier: "acme", Confidence: 50})

	out := Detect(run, nil)
	assert.Len(t, out, 3)

	types := map[core.ExceptionType]bool{}
	for _, ex := range out {
		types[ex.Type] = true
	}
	assert.True(t, types[core.ExceptionMissingData])
	assert.True(t, types[core.ExceptionExpiredAssumption])
	assert.True(t, types[core.ExceptionStaleQuote])
}
