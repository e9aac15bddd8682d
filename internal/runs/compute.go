package runs

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/slahq/sla/internal/core"
)

// Known procurement categories with baseline demand (units per period)
// and baseline unit cost. Scopes naming anything else produce zero
// rows, which the exception sweep flags as missing data.
var baseDemand = map[string]int64{
	"electronics":   140,
	"components":    320,
	"raw_materials": 900,
	"packaging":     1500,
	"logistics":     60,
}

var baseUnitCost = map[string]string{
	"electronics":   "18.40",
	"components":    "4.25",
	"raw_materials": "1.12",
	"packaging":     "0.34",
	"logistics":     "42.00",
}

// Supplier cost factors relative to the reference supplier.
var supplierFactor = map[string]string{
	"acme":    "1.00",
	"globex":  "0.97",
	"initech": "1.05",
}

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// Compute produces the projection rows and summary metrics for a run.
// The computation is deterministic for a given kind and scope: demand
// grows per period for forecasts, unit cost inflates per period for
// cost projections, and a small category/supplier wiggle keeps rows
// from being uniform.
func Compute(kind core.RunKind, sc core.Scope) ([]core.ProjectionRow, map[string]string, error) {
	periods, err := strconv.Atoi(sc.Period)
	if err != nil || periods <= 0 {
		return nil, nil, fmt.Errorf("invalid period %q: %w", sc.Period, core.ErrValidation)
	}
	if sc.Confidence < 0 || sc.Confidence > 100 {
		return nil, nil, fmt.Errorf("invalid confidence %d: %w", sc.Confidence, core.ErrValidation)
	}

	categories := resolveCategories(sc.Category)
	suppliers := resolveSuppliers(sc.Supplier)

	// Lower confidence widens the demand buffer.
	buffer := thousand.Add(decimal.NewFromInt(int64(100 - sc.Confidence))).Div(thousand)

	var rows []core.ProjectionRow
	totalSpend := decimal.Zero

	for p := 1; p <= periods; p++ {
		for _, cat := range categories {
			for _, sup := range suppliers {
				demand := decimal.NewFromInt(baseDemand[cat])
				unitCost := decimal.RequireFromString(baseUnitCost[cat]).
					Mul(decimal.RequireFromString(supplierFactor[sup]))

				switch kind {
				case core.RunKindForecast:
					// Demand grows 2% per period.
					growth := hundred.Add(decimal.NewFromInt(int64(2 * p))).Div(hundred)
					demand = demand.Mul(growth)
				case core.RunKindCostProjection:
					// Unit cost inflates 1% per period.
					inflation := hundred.Add(decimal.NewFromInt(int64(p))).Div(hundred)
					unitCost = unitCost.Mul(inflation)
				}

				// Deterministic wiggle per category/supplier pair.
				wiggle := hundred.Add(decimal.NewFromInt(pairWiggle(cat, sup))).Div(hundred)
				demand = demand.Mul(wiggle).Mul(buffer).Round(2)
				unitCost = unitCost.Round(4)
				spend := demand.Mul(unitCost).Round(2)

				rows = append(rows, core.ProjectionRow{
					Period:   p,
					Category: cat,
					Supplier: sup,
					Demand:   demand,
					UnitCost: unitCost,
					Spend:    spend,
				})
				totalSpend = totalSpend.Add(spend)
			}
		}
	}

	metrics := map[string]string{
		"rows":        strconv.Itoa(len(rows)),
		"periods":     strconv.Itoa(periods),
		"total_spend": totalSpend.Round(2).String(),
		"confidence":  strconv.Itoa(sc.Confidence),
	}

	return rows, metrics, nil
}

func resolveCategories(category string) []string {
	if category == "all" {
		return []string{"components", "electronics", "logistics", "packaging", "raw_materials"}
	}
	if _, ok := baseDemand[category]; ok {
		return []string{category}
	}
	return nil
}

func resolveSuppliers(supplier string) []string {
	if supplier == "all" {
		return []string{"acme", "globex", "initech"}
	}
	if _, ok := supplierFactor[supplier]; ok {
		return []string{supplier}
	}
	return nil
}

// pairWiggle maps a category/supplier pair to a stable offset in
// [-4, 5] percent.
func pairWiggle(category, supplier string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(category + "|" + supplier))
	return int64(h.Sum32()%10) - 4
}
