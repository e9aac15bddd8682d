package runs

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/core"
)

func TestCompute_Forecast(t *testing.T) {
	sc := core.Scope{Period: "3", Category: "electronics", Supplier: "acme", Confidence: 85}

	rows, metrics, err := Compute(core.RunKindForecast, sc)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "3", metrics["rows"])
	assert.Equal(t, "3", metrics["periods"])
	assert.Equal(t, "85", metrics["confidence"])

	// Demand grows period over period in a forecast.
	assert.True(t, rows[1].Demand.GreaterThan(rows[0].Demand))
	assert.True(t, rows[2].Demand.GreaterThan(rows[1].Demand))
	// Unit cost stays flat.
	assert.True(t, rows[0].UnitCost.Equal(rows[1].UnitCost))

	// Spend is exactly demand times unit cost, rounded to cents.
	want := rows[0].Demand.Mul(rows[0].UnitCost).Round(2)
	assert.True(t, want.Equal(rows[0].Spend))
}

func TestCompute_CostProjection(t *testing.T) {
	sc := core.Scope{Period: "3", Category: "electronics", Supplier: "acme", Confidence: 85}

	rows, _, err := Compute(core.RunKindCostProjection, sc)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Unit cost inflates period over period in a cost projection.
	assert.True(t, rows[1].UnitCost.GreaterThan(rows[0].UnitCost))
	// Demand stays flat.
	assert.True(t, rows[0].Demand.Equal(rows[1].Demand))
}

func TestCompute_Deterministic(t *testing.T) {
	sc := core.Scope{Period: "6", Category: "all", Supplier: "all", Confidence: 90}

	first, firstMetrics, err := Compute(core.RunKindForecast, sc)
	require.NoError(t, err)
	second, secondMetrics, err := Compute(core.RunKindForecast, sc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstMetrics, secondMetrics)
}

func TestCompute_AllExpandsEverything(t *testing.T) {
	sc := core.Scope{Period: "2", Category: "all", Supplier: "all", Confidence: 85}

	rows, metrics, err := Compute(core.RunKindForecast, sc)
	require.NoError(t, err)

	// 2 periods x 5 categories x 3 suppliers.
	assert.Len(t, rows, 30)
	assert.Equal(t, "30", metrics["rows"])
}

func TestCompute_UnknownCategoryYieldsNoRows(t *testing.T) {
	sc := core.Scope{Period: "2", Category: "unobtainium", Supplier: "all", Confidence: 85}

	rows, metrics, err := Compute(core.RunKindForecast, sc)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, "0", metrics["rows"])
	assert.Equal(t, "0", metrics["total_spend"])
}

func TestCompute_InvalidScope(t *testing.T) {
	_, _, err := Compute(core.RunKindForecast, core.Scope{Period: "abc", Category: "all", Supplier: "all", Confidence: 85})
	assert.ErrorIs(t, err, core.ErrValidation)

	_, _, err = Compute(core.RunKindForecast, core.Scope{Period: "12", Category: "all", Supplier: "all", Confidence: 200})
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestCompute_LowerConfidenceWidensBuffer(t *testing.T) {
	high := core.Scope{Period: "1", Category: "electronics", Supplier: "acme", Confidence: 95}
	low := core.Scope{Period: "1", Category: "electronics", Supplier: "acme", Confidence: 50}

	highRows, _, err := Compute(core.RunKindForecast, high)
	require.NoError(t, err)
	lowRows, _, err := Compute(core.RunKindForecast, low)
	require.NoError(t, err)

	assert.True(t, lowRows[0].Demand.GreaterThan(highRows[0].Demand),
		"lower confidence should buffer more demand")
}

func TestCompute_TotalSpendMatchesRows(t *testing.T) {
	sc := core.Scope{Period: "4", Category: "packaging", Supplier: "globex", Confidence: 85}

	rows, metrics, err := Compute(core.RunKindCostProjection, sc)
	require.NoError(t, err)

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Spend)
	}
	assert.Equal(t, total.Round(2).String(), metrics["total_spend"])
}
