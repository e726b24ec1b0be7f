package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/service"
)

func testReport() *service.Report {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &service.Report{
		GeneratedAt:   time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		FilterSummary: "product=Widget",
		KPIs: service.KPISet{
			DateRange:        service.DateRange{Start: start, End: start.AddDate(0, 0, 6)},
			VolumeByProduct:  map[string]float64{"Widget": 70, "Gadget": 70, "Gizmo": 30},
			RevenueByProduct: map[string]float64{"Widget": 350, "Gadget": 280, "Gizmo": 90},
			TotalVolume:      170,
			TotalRevenue:     720,
			AvgUnitPrice:     4.2,
			Orders:           25,
		},
		Daily: model.DailySeries{
			{Date: start, Volume: 20, Revenue: 85},
			{Date: start.AddDate(0, 0, 1), Volume: 0, Revenue: 0},
			{Date: start.AddDate(0, 0, 2), Volume: 30, Revenue: 120},
		},
		Forecast: []model.ForecastPoint{
			{Date: start.AddDate(0, 0, 6), Volume: 25, Kind: model.PointActual},
			{Date: start.AddDate(0, 0, 7), Volume: 26, Lower: 20.8, Upper: 31.2, Kind: model.PointForecast},
		},
		ForecastNote: "linear trend over 7 days of history",
		Recommendations: []model.Recommendation{
			{Kind: model.RecTopProducts, Text: "Top products by volume: Gadget, Widget, Gizmo."},
			{Kind: model.RecTrend, Text: "Volume grew 12.0% month over month."},
		},
	}
}

func TestBuildTabData(t *testing.T) {
	data := buildTabData(testReport())

	assert.Equal(t, "product=Widget", data.FilterSummary)
	assert.Equal(t, 25, data.Orders)
	assert.True(t, data.TotalVolume.Equal(decimal.NewFromInt(170)))

	// Products sorted by volume descending, name ascending on ties.
	require.Len(t, data.Products, 3)
	assert.Equal(t, "Gadget", data.Products[0].Product)
	assert.Equal(t, "Widget", data.Products[1].Product)
	assert.Equal(t, "Gizmo", data.Products[2].Product)

	require.Len(t, data.Daily, 3)
	assert.True(t, data.Daily[1].Volume.IsZero())

	require.Len(t, data.Forecast, 2)
	assert.Equal(t, "actual", data.Forecast[0].Kind)
	assert.True(t, data.Forecast[0].Lower.IsZero())
	assert.Equal(t, "forecast", data.Forecast[1].Kind)
	assert.False(t, data.Forecast[1].Upper.IsZero())

	assert.Len(t, data.Recommendations, 2)
}

func TestBuildSummaryValues(t *testing.T) {
	data := buildTabData(testReport())
	values := buildSummaryValues(data)

	require.NotEmpty(t, values)
	assert.Equal(t, "Sales Analysis Report", values[0][0])

	// Header row followed by one row per product.
	headerIdx := -1
	for i, row := range values {
		if len(row) == 3 && row[0] == "Product" {
			headerIdx = i
			break
		}
	}
	require.NotEqual(t, -1, headerIdx, "product header row missing")
	assert.Len(t, values[headerIdx+1:], 3)
	assert.Equal(t, "Gadget", values[headerIdx+1][0])
}

func TestBuildDailyValues(t *testing.T) {
	data := buildTabData(testReport())
	values := buildDailyValues(data)

	require.Len(t, values, 4)
	assert.Equal(t, []any{"Date", "Volume", "Revenue"}, values[0])
	assert.Equal(t, "2024-03-01", values[1][0])
}

func TestBuildForecastValues(t *testing.T) {
	data := buildTabData(testReport())
	values := buildForecastValues(data)

	// Note row, header row, then one row per point.
	require.Len(t, values, 4)
	assert.Equal(t, "linear trend over 7 days of history", values[0][0])
	assert.Equal(t, "Date", values[1][0])
	assert.Len(t, values[2], 3, "actual rows carry no band")
	assert.Len(t, values[3], 5, "forecast rows carry the band")
}

func TestBuildRecommendationValues(t *testing.T) {
	data := buildTabData(testReport())
	values := buildRecommendationValues(data)

	require.Len(t, values, 3)
	assert.Equal(t, 1, values[1][0])
	assert.Equal(t, 2, values[2][0])
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	report := testReport()

	ctx := context.Background()
	require.NoError(t, mock.Write(ctx, report))
	assert.Equal(t, 1, mock.WriteCallCount)
	assert.Same(t, report, mock.LastReport)

	mock.SetWriteError(assert.AnError)
	assert.ErrorIs(t, mock.Write(ctx, report), assert.AnError)

	mock.Reset()
	assert.Equal(t, 0, mock.WriteCallCount)
	assert.Nil(t, mock.LastReport)
}
