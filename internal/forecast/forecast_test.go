package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
)

func makeSeries(values []float64) model.DailySeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(model.DailySeries, len(values))
	for i, v := range values {
		series[i] = model.DailyPoint{Date: start.AddDate(0, 0, i), Volume: v}
	}
	return series
}

func linearValues(n int, intercept, slope float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = intercept + slope*float64(i)
	}
	return values
}

// weeklyValues repeats a 7-day pattern for the given number of days.
func weeklyValues(n int, pattern [7]float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = pattern[i%7]
	}
	return values
}

func TestNew(t *testing.T) {
	m, err := New("linear")
	require.NoError(t, err)
	assert.Equal(t, "linear", m.Name())

	m, err = New("holt-winters")
	require.NoError(t, err)
	assert.Equal(t, "holt-winters", m.Name())

	m, err = New("hw")
	require.NoError(t, err)
	assert.Equal(t, "holt-winters", m.Name())

	_, err = New("prophet")
	assert.Error(t, err)
}

func TestLinear_ReproducesPerfectTrend(t *testing.T) {
	// volume = 10 + 2*day
	series := makeSeries(linearValues(20, 10, 2))

	points, err := NewLinear().Forecast(series, 7)
	require.NoError(t, err)
	require.Len(t, points, 27)

	for h := 0; h < 7; h++ {
		p := points[20+h]
		assert.Equal(t, model.PointForecast, p.Kind)
		want := 10 + 2*float64(20+h)
		assert.InDelta(t, want, p.Volume, 1e-9, "forecast step %d", h)
	}
}

func TestLinear_CombinedSeriesShape(t *testing.T) {
	series := makeSeries(linearValues(10, 5, 1))

	points, err := NewLinear().Forecast(series, 30)
	require.NoError(t, err)
	require.Len(t, points, 40)

	// History tagged actual, projections tagged forecast
	for i := 0; i < 10; i++ {
		assert.Equal(t, model.PointActual, points[i].Kind)
		assert.True(t, points[i].Date.Equal(series[i].Date))
	}

	// Forecast is contiguous with the last actual date, one day per step
	for i := 10; i < 40; i++ {
		assert.Equal(t, model.PointForecast, points[i].Kind)
		wantDate := series.End().AddDate(0, 0, i-9)
		assert.True(t, points[i].Date.Equal(wantDate), "point %d date %v want %v", i, points[i].Date, wantDate)
	}
}

func TestLinear_Band(t *testing.T) {
	series := makeSeries(linearValues(5, 100, 0))

	points, err := NewLinear().Forecast(series, 1)
	require.NoError(t, err)

	p := points[len(points)-1]
	assert.InDelta(t, p.Volume*0.8, p.Lower, 1e-9)
	assert.InDelta(t, p.Volume*1.2, p.Upper, 1e-9)
}

func TestLinear_InsufficientData(t *testing.T) {
	_, err := NewLinear().Forecast(makeSeries([]float64{5}), 7)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)

	_, err = NewLinear().Forecast(makeSeries(nil), 7)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)
}

func TestLinear_InvalidHorizon(t *testing.T) {
	_, err := NewLinear().Forecast(makeSeries(linearValues(10, 1, 1)), 0)
	assert.Error(t, err)
}

func TestHoltWinters_RefusesShortHistory(t *testing.T) {
	// 29 points is one short of the precondition
	_, err := NewHoltWinters().Forecast(makeSeries(linearValues(29, 10, 0)), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)
}

func TestHoltWinters_ForecastLength(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		horizon int
	}{
		{name: "minimum history, week ahead", points: 30, horizon: 7},
		{name: "quarter history, month ahead", points: 90, horizon: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := makeSeries(weeklyValues(tt.points, [7]float64{20, 22, 21, 23, 25, 40, 38}))

			points, err := NewHoltWinters().Forecast(series, tt.horizon)
			require.NoError(t, err)
			require.Len(t, points, tt.points+tt.horizon)

			forecastCount := 0
			for _, p := range points {
				if p.Kind == model.PointForecast {
					forecastCount++
				}
			}
			assert.Equal(t, tt.horizon, forecastCount)
		})
	}
}

func TestHoltWinters_ConstantSeries(t *testing.T) {
	series := makeSeries(linearValues(42, 50, 0))

	points, err := NewHoltWinters().Forecast(series, 14)
	require.NoError(t, err)

	for _, p := range points[42:] {
		assert.InDelta(t, 50.0, p.Volume, 1e-6)
	}
}

func TestHoltWinters_TracksWeeklyPattern(t *testing.T) {
	pattern := [7]float64{10, 10, 10, 10, 10, 100, 100}
	series := makeSeries(weeklyValues(70, pattern))

	points, err := NewHoltWinters().Forecast(series, 7)
	require.NoError(t, err)

	// The projection of a stable repeating pattern should keep weekend
	// volumes clearly above weekday volumes
	forecast := points[70:]
	for h, p := range forecast {
		expected := pattern[(70+h)%7]
		if expected > 50 {
			assert.Greater(t, p.Volume, 50.0, "step %d should be a weekend-level day", h)
		} else {
			assert.Less(t, p.Volume, 50.0, "step %d should be a weekday-level day", h)
		}
	}
}

func TestDecompose(t *testing.T) {
	t.Run("requires two full periods", func(t *testing.T) {
		_, err := Decompose(makeSeries(linearValues(13, 10, 0)))
		assert.ErrorIs(t, err, common.ErrInsufficientHistory)
	})

	t.Run("constant series has no seasonality", func(t *testing.T) {
		series := makeSeries(linearValues(28, 10, 0))
		d, err := Decompose(series)
		require.NoError(t, err)

		for _, s := range d.Seasonal {
			assert.InDelta(t, 0.0, s, 1e-9)
		}
		assert.Less(t, d.SeasonalStrength(series), 0.1)
	})

	t.Run("alternating weekday weekend pattern is detected", func(t *testing.T) {
		series := makeSeries(weeklyValues(42, [7]float64{10, 10, 10, 10, 10, 100, 100}))
		d, err := Decompose(series)
		require.NoError(t, err)

		assert.Greater(t, d.SeasonalStrength(series), 0.1)
	})

	t.Run("trend edges are NaN", func(t *testing.T) {
		d, err := Decompose(makeSeries(linearValues(21, 5, 1)))
		require.NoError(t, err)

		assert.True(t, math.IsNaN(d.Trend[0]))
		assert.True(t, math.IsNaN(d.Trend[20]))
		assert.False(t, math.IsNaN(d.Trend[10]))
	})

	t.Run("components recompose the interior", func(t *testing.T) {
		series := makeSeries(weeklyValues(35, [7]float64{5, 6, 7, 8, 9, 15, 14}))
		d, err := Decompose(series)
		require.NoError(t, err)

		y := series.Volumes()
		for t2 := 3; t2 < 32; t2++ {
			got := d.Trend[t2] + d.Seasonal[t2] + d.Residual[t2]
			assert.InDelta(t, y[t2], got, 1e-9)
		}
	})
}
