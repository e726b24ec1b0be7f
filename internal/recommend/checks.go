package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/salescope/salescope/internal/analysis"
	"github.com/salescope/salescope/internal/forecast"
	"github.com/salescope/salescope/internal/model"
)

// seasonalStrengthThreshold is the ratio of seasonal-component deviation to
// mean level above which the seasonality observation fires.
const seasonalStrengthThreshold = 0.1

// seasonalityCheck decomposes the daily series and reports a weekly pattern
// when the seasonal component is strong, naming the best and worst weekdays
// by total volume.
func seasonalityCheck(session *analysis.Session) (*model.Recommendation, error) {
	daily := session.Daily()

	d, err := forecast.Decompose(daily)
	if err != nil {
		return nil, err
	}
	if d.SeasonalStrength(daily) <= seasonalStrengthThreshold {
		return nil, nil
	}

	var totals [7]float64
	for _, p := range daily {
		totals[p.Date.Weekday()] += p.Volume
	}

	best, worst := time.Sunday, time.Sunday
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		if totals[wd] > totals[best] {
			best = wd
		}
		if totals[wd] < totals[worst] {
			worst = wd
		}
	}

	return &model.Recommendation{
		Kind: model.RecSeasonality,
		Text: fmt.Sprintf("Sales follow a strong weekly pattern: %ss are your best day and %ss your weakest. Plan stock and staffing around that cycle.",
			best, worst),
	}, nil
}

// topProductsCheck ranks products by total volume and names the top three.
// Ties keep the order of first appearance in the data.
func topProductsCheck(session *analysis.Session) (*model.Recommendation, error) {
	sales := session.Sales()
	if len(sales) == 0 {
		return nil, fmt.Errorf("no sales to rank")
	}

	totals := make(map[string]float64)
	var order []string
	for i := range sales {
		if _, seen := totals[sales[i].Product]; !seen {
			order = append(order, sales[i].Product)
		}
		totals[sales[i].Product] += sales[i].Volume
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	top := order
	if len(top) > 3 {
		top = top[:3]
	}

	return &model.Recommendation{
		Kind: model.RecTopProducts,
		Text: fmt.Sprintf("Focus marketing on your top sellers by volume: %s.", strings.Join(top, ", ")),
	}, nil
}

// customerSegmentCheck names the highest-revenue customer segment when more
// than one exists.
func customerSegmentCheck(session *analysis.Session) (*model.Recommendation, error) {
	byRevenue := session.KPIs().RevenueByCustomerType
	if len(byRevenue) < 2 {
		return nil, nil
	}

	best, _ := maxByValue(byRevenue)
	return &model.Recommendation{
		Kind: model.RecCustomerSegment,
		Text: fmt.Sprintf("The %q customer segment generates the most revenue. Consider a loyalty program targeting it.", best),
	}, nil
}

// locationCheck names the strongest and weakest locations by revenue when
// more than one exists.
func locationCheck(session *analysis.Session) (*model.Recommendation, error) {
	byRevenue := session.KPIs().RevenueByLocation
	if len(byRevenue) < 2 {
		return nil, nil
	}

	best, worst := maxByValue(byRevenue)
	return &model.Recommendation{
		Kind: model.RecLocation,
		Text: fmt.Sprintf("%s is your highest-revenue location and %s the lowest. Review what works in %s and whether %s needs attention.",
			best, worst, best, worst),
	}, nil
}

// trendCheck compares revenue of the last two calendar months present in
// the data and flags growth or decline.
func trendCheck(session *analysis.Session) (*model.Recommendation, error) {
	sales := session.Sales()
	if len(sales) == 0 {
		return nil, fmt.Errorf("no sales")
	}

	byMonth := make(map[string]float64)
	var months []string
	for i := range sales {
		key := sales[i].Date.Format("2006-01")
		if _, seen := byMonth[key]; !seen {
			months = append(months, key)
		}
		byMonth[key] += sales[i].Revenue()
	}
	if len(months) < 2 {
		return nil, nil
	}

	sort.Strings(months)
	prev := byMonth[months[len(months)-2]]
	last := byMonth[months[len(months)-1]]
	if prev == 0 {
		return nil, fmt.Errorf("previous month has zero revenue")
	}

	change := (last - prev) / prev * 100
	if change >= 0 {
		return &model.Recommendation{
			Kind: model.RecTrend,
			Text: fmt.Sprintf("Revenue grew %.1f%% month over month. Momentum is positive; keep current promotions running.", change),
		}, nil
	}
	return &model.Recommendation{
		Kind: model.RecTrend,
		Text: fmt.Sprintf("Revenue declined %.1f%% month over month. Investigate pricing, stock levels, or seasonal demand shifts.", -change),
	}, nil
}

// Elasticity classification thresholds on the mean per-product correlation
// between volume and price.
const (
	elasticThreshold = -0.3
	premiumThreshold = 0.1
)

// priceElasticityCheck averages the per-product correlation of volume
// against unit price and classifies demand as elastic or premium. Products
// without price variation contribute nothing.
func priceElasticityCheck(session *analysis.Session) (*model.Recommendation, error) {
	sales := session.Sales()

	type pair struct{ volume, price []float64 }
	byProduct := make(map[string]*pair)
	for i := range sales {
		p := byProduct[sales[i].Product]
		if p == nil {
			p = &pair{}
			byProduct[sales[i].Product] = p
		}
		p.volume = append(p.volume, sales[i].Volume)
		p.price = append(p.price, sales[i].UnitPrice)
	}

	var sum float64
	var counted int
	for _, p := range byProduct {
		r, ok := correlation(p.volume, p.price)
		if !ok {
			continue
		}
		sum += r
		counted++
	}
	if counted == 0 {
		return nil, fmt.Errorf("no product has enough price variation")
	}

	meanCorr := sum / float64(counted)
	switch {
	case meanCorr < elasticThreshold:
		return &model.Recommendation{
			Kind: model.RecPriceElasticity,
			Text: fmt.Sprintf("Demand looks price-elastic (mean volume/price correlation %.2f). Small discounts should lift volume meaningfully.", meanCorr),
		}, nil
	case meanCorr > premiumThreshold:
		return &model.Recommendation{
			Kind: model.RecPriceElasticity,
			Text: fmt.Sprintf("Volume holds up at higher prices (mean volume/price correlation %.2f). There may be room for premium pricing.", meanCorr),
		}, nil
	default:
		return nil, nil
	}
}

// maxByValue returns the keys with the highest and lowest values. Ties are
// broken alphabetically so the output is deterministic.
func maxByValue(m map[string]float64) (best, worst string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, worst = keys[0], keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
		if m[k] < m[worst] {
			worst = k
		}
	}
	return best, worst
}

// correlation computes the Pearson correlation of x and y. It reports
// ok=false when either side has no variance or fewer than two points.
func correlation(x, y []float64) (float64, bool) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, false
	}

	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}

	return cov / math.Sqrt(varX*varY), true
}
