package analysis

import (
	"github.com/salescope/salescope/internal/service"
)

// KPIs computes the at-a-glance metrics over the filtered rows. Total
// revenue is the sum of per-row volume times unit price; the average is the
// plain mean of the unit-price column.
func (s *Session) KPIs() service.KPISet {
	sales := s.Sales()

	kpis := service.KPISet{
		VolumeByProduct:       make(map[string]float64),
		RevenueByProduct:      make(map[string]float64),
		RevenueByLocation:     make(map[string]float64),
		RevenueByCustomerType: make(map[string]float64),
		Orders:                len(sales),
	}

	if len(sales) == 0 {
		return kpis
	}

	var priceSum float64
	for i := range sales {
		sale := &sales[i]
		revenue := sale.Revenue()

		kpis.TotalVolume += sale.Volume
		kpis.TotalRevenue += revenue
		priceSum += sale.UnitPrice

		kpis.VolumeByProduct[sale.Product] += sale.Volume
		kpis.RevenueByProduct[sale.Product] += revenue
		kpis.RevenueByLocation[sale.Location] += revenue
		kpis.RevenueByCustomerType[sale.CustomerType] += revenue

		day := truncateDay(sale.Date)
		if kpis.DateRange.Start.IsZero() || day.Before(kpis.DateRange.Start) {
			kpis.DateRange.Start = day
		}
		if day.After(kpis.DateRange.End) {
			kpis.DateRange.End = day
		}
	}
	kpis.AvgUnitPrice = priceSum / float64(len(sales))

	return kpis
}
