package core

// CardKey identifies a dashboard card. Unknown keys in persisted
// layouts are dropped on load.
type CardKey string

// Known dashboard cards.
const (
	CardSpendSummary     CardKey = "spend_summary"
	CardOpenOrders       CardKey = "open_orders"
	CardInventoryHealth  CardKey = "inventory_health"
	CardSupplierRisk     CardKey = "supplier_risk"
	CardForecastAccuracy CardKey = "forecast_accuracy"
	CardShippingETA      CardKey = "shipping_eta"
	CardExceptionQueue   CardKey = "exception_queue"
	CardCostTrend        CardKey = "cost_trend"
)

// KnownCardKeys lists every card in default display order.
var KnownCardKeys = []CardKey{
	CardSpendSummary,
	CardOpenOrders,
	CardInventoryHealth,
	CardSupplierRisk,
	CardForecastAccuracy,
	CardShippingETA,
	CardExceptionQueue,
	CardCostTrend,
}

// Valid reports whether k is a known card key.
func (k CardKey) Valid() bool {
	for _, known := range KnownCardKeys {
		if k == known {
			return true
		}
	}
	return false
}

// CardSize is an optional display size hint.
type CardSize string

// Card size constants.
const (
	CardSizeSmall  CardSize = "sm"
	CardSizeMedium CardSize = "md"
	CardSizeLarge  CardSize = "lg"
)

// CardConfig is one card's entry in a dashboard layout.
type CardConfig struct {
	Key     CardKey  `json:"key"`
	Visible bool     `json:"visible"`
	Size    CardSize `json:"size,omitempty"`
	Metric  string   `json:"metric,omitempty"`
}
