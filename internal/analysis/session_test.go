package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeSale(date time.Time, product, location, customer string, volume, price float64) model.Sale {
	return model.Sale{
		ID:           fmt.Sprintf("%s-%s-%v", product, date.Format("20060102"), volume),
		Date:         date,
		Product:      product,
		Location:     location,
		CustomerType: customer,
		Volume:       volume,
		UnitPrice:    price,
	}
}

func TestAggregateDaily_FillsGaps(t *testing.T) {
	sales := []model.Sale{
		makeSale(day(2024, 1, 1), "A", "East", "Retail", 10, 2),
		makeSale(day(2024, 1, 1), "B", "West", "Retail", 5, 4),
		// Jan 2-4 missing entirely
		makeSale(day(2024, 1, 5), "A", "East", "Retail", 3, 2),
	}

	series := AggregateDaily(sales)

	require.Len(t, series, 5)
	for i := 1; i < len(series); i++ {
		gap := series[i].Date.Sub(series[i-1].Date)
		assert.Equal(t, 24*time.Hour, gap, "series must have no calendar gaps")
	}

	assert.InDelta(t, 15.0, series[0].Volume, 1e-9)
	assert.InDelta(t, 40.0, series[0].Revenue, 1e-9) // 10*2 + 5*4
	assert.Zero(t, series[1].Volume)
	assert.Zero(t, series[2].Volume)
	assert.Zero(t, series[3].Volume)
	assert.InDelta(t, 3.0, series[4].Volume, 1e-9)
}

func TestAggregateDaily_SingleDayAndEmpty(t *testing.T) {
	assert.Empty(t, AggregateDaily(nil))

	series := AggregateDaily([]model.Sale{
		makeSale(day(2024, 6, 15), "A", "East", "Retail", 7, 3),
	})
	require.Len(t, series, 1)
	assert.True(t, series[0].Date.Equal(day(2024, 6, 15)))
	assert.InDelta(t, 7.0, series[0].Volume, 1e-9)
}

func TestAggregateDaily_TruncatesTimestamps(t *testing.T) {
	sales := []model.Sale{
		makeSale(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), "A", "East", "Retail", 1, 1),
		makeSale(time.Date(2024, 1, 1, 18, 45, 0, 0, time.UTC), "A", "East", "Retail", 2, 1),
	}

	series := AggregateDaily(sales)
	require.Len(t, series, 1)
	assert.InDelta(t, 3.0, series[0].Volume, 1e-9)
}

func TestSession_FilterAndMemoization(t *testing.T) {
	sales := []model.Sale{
		makeSale(day(2024, 1, 1), "A", "East", "Retail", 10, 2),
		makeSale(day(2024, 1, 2), "B", "West", "Wholesale", 5, 4),
		makeSale(day(2024, 1, 3), "A", "West", "Retail", 8, 2),
	}

	session := NewSession(sales)
	assert.Len(t, session.Sales(), 3)

	daily := session.Daily()
	require.Len(t, daily, 3)

	// Same filter: memoized slice is handed back
	again := session.Daily()
	assert.Same(t, &daily[0], &again[0])

	session.SetFilter(Filter{Products: []string{"A"}})
	filtered := session.Sales()
	require.Len(t, filtered, 2)
	assert.Equal(t, "A", filtered[0].Product)

	daily = session.Daily()
	require.Len(t, daily, 3) // Jan 1..3 with a zero gap on Jan 2
	assert.Zero(t, daily[1].Volume)
}

func TestSession_FilterDimensions(t *testing.T) {
	from := day(2024, 1, 2)
	to := day(2024, 1, 2)

	sales := []model.Sale{
		makeSale(day(2024, 1, 1), "A", "East", "Retail", 10, 2),
		makeSale(day(2024, 1, 2), "B", "West", "Wholesale", 5, 4),
		makeSale(day(2024, 1, 3), "A", "West", "Retail", 8, 2),
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "no filter", filter: Filter{}, want: 3},
		{name: "date range", filter: Filter{StartDate: &from, EndDate: &to}, want: 1},
		{name: "location", filter: Filter{Locations: []string{"West"}}, want: 2},
		{name: "customer type", filter: Filter{CustomerTypes: []string{"Wholesale"}}, want: 1},
		{name: "no match", filter: Filter{Products: []string{"C"}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(sales)
			session.SetFilter(tt.filter)
			assert.Len(t, session.Sales(), tt.want)
		})
	}
}

func TestSession_KPIs(t *testing.T) {
	sales := []model.Sale{
		makeSale(day(2024, 1, 1), "A", "East", "Retail", 10, 2),   // revenue 20
		makeSale(day(2024, 1, 2), "B", "West", "Wholesale", 5, 4), // revenue 20
		makeSale(day(2024, 1, 3), "A", "West", "Retail", 8, 3),    // revenue 24
	}

	kpis := NewSession(sales).KPIs()

	assert.Equal(t, 3, kpis.Orders)
	assert.InDelta(t, 23.0, kpis.TotalVolume, 1e-9)
	assert.InDelta(t, 64.0, kpis.TotalRevenue, 1e-9)
	assert.InDelta(t, 3.0, kpis.AvgUnitPrice, 1e-9)

	// Aggregate revenue must equal the sum of per-row volume*price
	var rowSum float64
	for i := range sales {
		rowSum += sales[i].Revenue()
	}
	assert.InDelta(t, rowSum, kpis.TotalRevenue, 1e-9)

	assert.InDelta(t, 18.0, kpis.VolumeByProduct["A"], 1e-9)
	assert.InDelta(t, 44.0, kpis.RevenueByProduct["A"], 1e-9)
	assert.InDelta(t, 44.0, kpis.RevenueByLocation["West"], 1e-9)
	assert.InDelta(t, 20.0, kpis.RevenueByCustomerType["Wholesale"], 1e-9)

	assert.True(t, kpis.DateRange.Start.Equal(day(2024, 1, 1)))
	assert.True(t, kpis.DateRange.End.Equal(day(2024, 1, 3)))
}

func TestSession_KPIs_Empty(t *testing.T) {
	kpis := NewSession(nil).KPIs()
	assert.Zero(t, kpis.Orders)
	assert.Zero(t, kpis.TotalRevenue)
	assert.Zero(t, kpis.AvgUnitPrice)
}
