package analysis

import (
	"time"

	"github.com/salescope/salescope/internal/model"
)

// Session holds one interaction's dataset and active filter. Every user
// action is a fresh pass over the filtered rows; the daily series is
// memoized until the filter changes. Not safe for concurrent use — the
// execution model is one logical worker per interaction.
type Session struct {
	sales    []model.Sale
	filter   Filter
	filtered []model.Sale
	daily    model.DailySeries
	fresh    bool
}

// NewSession creates a session over the full dataset with no filter.
func NewSession(sales []model.Sale) *Session {
	return &Session{sales: sales}
}

// SetFilter replaces the active filter and invalidates memoized results.
func (s *Session) SetFilter(filter Filter) {
	s.filter = filter
	s.filtered = nil
	s.daily = nil
	s.fresh = false
}

// Filter returns the active filter.
func (s *Session) Filter() Filter {
	return s.filter
}

// Sales returns the filtered rows, in original order.
func (s *Session) Sales() []model.Sale {
	if s.filtered != nil {
		return s.filtered
	}

	if s.filter.IsZero() {
		s.filtered = s.sales
		return s.filtered
	}

	filtered := make([]model.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if s.filter.Match(&sale) {
			filtered = append(filtered, sale)
		}
	}
	s.filtered = filtered
	return s.filtered
}

// Daily returns the gap-free daily aggregate of the filtered rows,
// recomputing only when the filter has changed since the last call.
func (s *Session) Daily() model.DailySeries {
	if s.fresh {
		return s.daily
	}
	s.daily = AggregateDaily(s.Sales())
	s.fresh = true
	return s.daily
}

// AggregateDaily sums volume and revenue per calendar day and reindexes the
// result to a continuous daily calendar between the minimum and maximum
// observed dates, with zero-filled gaps. The seasonal models require a
// fixed-frequency series; a skipped day would otherwise be read as an
// adjacent period and corrupt the seasonal period length.
func AggregateDaily(sales []model.Sale) model.DailySeries {
	if len(sales) == 0 {
		return model.DailySeries{}
	}

	type bucket struct {
		volume  float64
		revenue float64
	}
	byDay := make(map[time.Time]bucket)

	var minDay, maxDay time.Time
	for i := range sales {
		day := truncateDay(sales[i].Date)
		b := byDay[day]
		b.volume += sales[i].Volume
		b.revenue += sales[i].Revenue()
		byDay[day] = b

		if minDay.IsZero() || day.Before(minDay) {
			minDay = day
		}
		if maxDay.IsZero() || day.After(maxDay) {
			maxDay = day
		}
	}

	days := int(maxDay.Sub(minDay).Hours()/24) + 1
	series := make(model.DailySeries, 0, days)
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		b := byDay[day]
		series = append(series, model.DailyPoint{
			Date:    day,
			Volume:  b.volume,
			Revenue: b.revenue,
		})
	}

	return series
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
