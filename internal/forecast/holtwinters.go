package forecast

import (
	"math"

	"github.com/salescope/salescope/internal/model"
)

// HoltWinters fits additive trend plus additive weekly seasonality with a
// damped trend over the daily series. It refuses series shorter than
// MinSeasonalHistory rather than produce a forecast from under two full
// seasonal cycles of data.
type HoltWinters struct {
	Alpha float64 // level smoothing
	Beta  float64 // trend smoothing
	Gamma float64 // seasonal smoothing
	Phi   float64 // trend damping
}

// NewHoltWinters creates a Holt-Winters model with default smoothing
// constants.
func NewHoltWinters() *HoltWinters {
	return &HoltWinters{
		Alpha: 0.3,
		Beta:  0.05,
		Gamma: 0.25,
		Phi:   0.95,
	}
}

// Name returns the strategy name.
func (m *HoltWinters) Name() string { return "holt-winters" }

// Forecast runs the smoothing pass over the history and projects horizon
// days ahead.
func (m *HoltWinters) Forecast(series model.DailySeries, horizon int) ([]model.ForecastPoint, error) {
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}
	if len(series) < MinSeasonalHistory {
		return nil, insufficientHistory(len(series), MinSeasonalHistory)
	}

	y := series.Volumes()
	level, trend, seasonal := m.initialState(y)

	// Smoothing pass over the observed series
	for t := 0; t < len(y); t++ {
		s := t % SeasonalPeriod
		prevLevel := level

		level = m.Alpha*(y[t]-seasonal[s]) + (1-m.Alpha)*(prevLevel+m.Phi*trend)
		trend = m.Beta*(level-prevLevel) + (1-m.Beta)*m.Phi*trend
		seasonal[s] = m.Gamma*(y[t]-level) + (1-m.Gamma)*seasonal[s]
	}

	// Damped projection: the trend contribution is phi + phi^2 + ... + phi^h
	predicted := make([]float64, horizon)
	damp := 0.0
	for h := 1; h <= horizon; h++ {
		damp += math.Pow(m.Phi, float64(h))
		s := (len(y) + h - 1) % SeasonalPeriod
		predicted[h-1] = level + damp*trend + seasonal[s]
	}

	return combine(series, predicted), nil
}

// initialState seeds level, trend, and seasonal indices from the first two
// full weeks of history.
func (m *HoltWinters) initialState(y []float64) (level, trend float64, seasonal []float64) {
	firstWeek := mean(y[:SeasonalPeriod])
	secondWeek := mean(y[SeasonalPeriod : 2*SeasonalPeriod])

	level = firstWeek
	trend = (secondWeek - firstWeek) / SeasonalPeriod

	seasonal = make([]float64, SeasonalPeriod)
	for s := 0; s < SeasonalPeriod; s++ {
		seasonal[s] = (y[s] - firstWeek + y[SeasonalPeriod+s] - secondWeek) / 2
	}

	return level, trend, seasonal
}

func mean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}
