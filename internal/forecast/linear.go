package forecast

import (
	"github.com/salescope/salescope/internal/model"
)

// Linear fits an ordinary least-squares trend of volume against the
// sequential day index and extrapolates it. No seasonality term;
// deterministic and always succeeds given at least two points.
type Linear struct{}

// NewLinear creates a linear-trend model.
func NewLinear() *Linear {
	return &Linear{}
}

// Name returns the strategy name.
func (m *Linear) Name() string { return "linear" }

// Forecast extrapolates the fitted line horizon days past the series end.
func (m *Linear) Forecast(series model.DailySeries, horizon int) ([]model.ForecastPoint, error) {
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}
	if len(series) < 2 {
		return nil, insufficientHistory(len(series), 2)
	}

	slope, intercept := fitOLS(series.Volumes())

	predicted := make([]float64, horizon)
	n := len(series)
	for h := 0; h < horizon; h++ {
		predicted[h] = intercept + slope*float64(n+h)
	}

	return combine(series, predicted), nil
}

// fitOLS computes the least-squares slope and intercept of y against its
// index 0..n-1.
func fitOLS(y []float64) (slope, intercept float64) {
	n := float64(len(y))

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
