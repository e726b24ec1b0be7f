package forecast

import (
	"math"

	"github.com/salescope/salescope/internal/model"
)

// Decomposition splits a daily series into trend, seasonal, and residual
// components. Trend carries NaN at the edges where the centered moving
// average is undefined.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Decompose performs an additive seasonal decomposition with the weekly
// period. It requires at least two full periods of data.
func Decompose(series model.DailySeries) (*Decomposition, error) {
	y := series.Volumes()
	if len(y) < 2*SeasonalPeriod {
		return nil, insufficientHistory(len(y), 2*SeasonalPeriod)
	}

	n := len(y)
	half := SeasonalPeriod / 2

	// Centered moving-average trend
	trend := make([]float64, n)
	for t := 0; t < n; t++ {
		if t < half || t >= n-half {
			trend[t] = math.NaN()
			continue
		}
		var sum float64
		for i := t - half; i <= t+half; i++ {
			sum += y[i]
		}
		trend[t] = sum / SeasonalPeriod
	}

	// Seasonal indices: mean of the detrended values per weekday position,
	// centered so the indices sum to zero
	sums := make([]float64, SeasonalPeriod)
	counts := make([]int, SeasonalPeriod)
	for t := 0; t < n; t++ {
		if math.IsNaN(trend[t]) {
			continue
		}
		s := t % SeasonalPeriod
		sums[s] += y[t] - trend[t]
		counts[s]++
	}

	indices := make([]float64, SeasonalPeriod)
	var indexMean float64
	for s := 0; s < SeasonalPeriod; s++ {
		if counts[s] > 0 {
			indices[s] = sums[s] / float64(counts[s])
		}
		indexMean += indices[s]
	}
	indexMean /= SeasonalPeriod
	for s := range indices {
		indices[s] -= indexMean
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for t := 0; t < n; t++ {
		seasonal[t] = indices[t%SeasonalPeriod]
		if math.IsNaN(trend[t]) {
			residual[t] = math.NaN()
		} else {
			residual[t] = y[t] - trend[t] - seasonal[t]
		}
	}

	return &Decomposition{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}, nil
}

// SeasonalStrength returns the standard deviation of the seasonal component
// relative to the mean level of the series. The seasonality heuristic fires
// when this exceeds 0.1.
func (d *Decomposition) SeasonalStrength(series model.DailySeries) float64 {
	level := mean(series.Volumes())
	if level == 0 {
		return 0
	}
	return stddev(d.Seasonal) / math.Abs(level)
}

func stddev(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	m := mean(y)
	var sum float64
	for _, v := range y {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(y)))
}
