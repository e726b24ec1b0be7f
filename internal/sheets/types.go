package sheets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tab titles, in spreadsheet order.
const (
	TabSummary         = "Summary"
	TabDailySeries     = "Daily Series"
	TabForecast        = "Forecast"
	TabRecommendations = "Recommendations"
)

// DailyRow represents a single row in the Daily Series tab.
type DailyRow struct {
	Date    time.Time
	Volume  decimal.Decimal
	Revenue decimal.Decimal
}

// ForecastRow represents a single row in the Forecast tab.
type ForecastRow struct {
	Date   time.Time
	Kind   string // actual/forecast
	Volume decimal.Decimal
	Lower  decimal.Decimal
	Upper  decimal.Decimal
}

// ProductRow represents a single row of the per-product breakdown on the Summary tab.
type ProductRow struct {
	Product string
	Volume  decimal.Decimal
	Revenue decimal.Decimal
}

// TabData holds all the data for the complete spreadsheet export.
type TabData struct {
	DateRange       DateRange
	FilterSummary   string
	ForecastNote    string
	TotalVolume     decimal.Decimal
	TotalRevenue    decimal.Decimal
	AvgUnitPrice    decimal.Decimal
	Orders          int
	Products        []ProductRow
	Daily           []DailyRow
	Forecast        []ForecastRow
	Recommendations []string
}

// DateRange represents the time period covered by the report.
type DateRange struct {
	Start time.Time
	End   time.Time
}
