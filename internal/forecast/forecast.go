// Package forecast fits trend/seasonal models to the daily sales series and
// projects future volumes.
package forecast

import (
	"fmt"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
)

const (
	// SeasonalPeriod is the weekly cycle length of the daily series.
	SeasonalPeriod = 7

	// MinSeasonalHistory is the minimum number of daily points required to
	// fit the seasonal model. Below two full months of history the weekly
	// decomposition is unreliable, so the model refuses instead of guessing.
	MinSeasonalHistory = 30

	// BandFraction is the fixed ±20% band drawn around forecast points.
	// It is an illustrative heuristic carried over from the dashboard, not
	// a statistical prediction interval.
	BandFraction = 0.20
)

// Model produces a combined actual+forecast series from a daily aggregate.
type Model interface {
	Name() string
	Forecast(series model.DailySeries, horizon int) ([]model.ForecastPoint, error)
}

// New returns the model for the given strategy name.
func New(strategy string) (Model, error) {
	switch strategy {
	case "linear":
		return NewLinear(), nil
	case "holt-winters", "hw":
		return NewHoltWinters(), nil
	default:
		return nil, fmt.Errorf("unknown forecast strategy %q", strategy)
	}
}

// combine tags the history as actual points and appends the horizon
// projections, contiguous with the last actual date, with the fixed band
// applied to each forecast point.
func combine(series model.DailySeries, predicted []float64) []model.ForecastPoint {
	points := make([]model.ForecastPoint, 0, len(series)+len(predicted))

	for _, p := range series {
		points = append(points, model.ForecastPoint{
			Date:   p.Date,
			Kind:   model.PointActual,
			Volume: p.Volume,
		})
	}

	last := series.End()
	for i, v := range predicted {
		points = append(points, model.ForecastPoint{
			Date:   last.AddDate(0, 0, i+1),
			Kind:   model.PointForecast,
			Volume: v,
			Lower:  v * (1 - BandFraction),
			Upper:  v * (1 + BandFraction),
		})
	}

	return points
}

func validateHorizon(horizon int) error {
	if horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	return nil
}

// insufficientHistory builds the precondition error for a too-short series.
func insufficientHistory(got, want int) error {
	return fmt.Errorf("%w: have %d daily points, need at least %d",
		common.ErrInsufficientHistory, got, want)
}
