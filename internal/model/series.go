package model

import "time"

// DailyPoint is one calendar day of aggregated sales.
type DailyPoint struct {
	Date    time.Time
	Volume  float64
	Revenue float64
}

// DailySeries is a date-indexed daily aggregate covering every calendar day
// between the first and last observed date inclusive. Days without sales
// carry zero volume; the seasonal models depend on the index being gap-free.
type DailySeries []DailyPoint

// Volumes returns the volume column as a plain slice.
func (s DailySeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Volume
	}
	return out
}

// Start returns the first date in the series, or the zero time when empty.
func (s DailySeries) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// End returns the last date in the series, or the zero time when empty.
func (s DailySeries) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// PointKind tags a forecast series point as observed history or projection.
type PointKind string

// Point kinds.
const (
	PointActual   PointKind = "actual"
	PointForecast PointKind = "forecast"
)

// ForecastPoint is one day of a combined history-plus-projection series.
// Lower and Upper are only set on forecast points and hold the fixed ±20%
// band; the band is illustrative, not a statistical prediction interval.
type ForecastPoint struct {
	Date   time.Time
	Kind   PointKind
	Volume float64
	Lower  float64
	Upper  float64
}
