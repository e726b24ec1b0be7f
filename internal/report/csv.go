package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/salescope/salescope/internal/model"
)

// WriteSalesCSV exports the filtered transaction table.
func WriteSalesCSV(w io.Writer, sales []model.Sale) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "product", "location", "customer_type", "volume", "unit_price", "revenue"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range sales {
		sale := &sales[i]
		record := []string{
			sale.Date.Format("2006-01-02"),
			sale.Product,
			sale.Location,
			sale.CustomerType,
			formatFloat(sale.Volume),
			formatFloat(sale.UnitPrice),
			formatFloat(sale.Revenue()),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteForecastCSV exports the combined actual/forecast series.
func WriteForecastCSV(w io.Writer, points []model.ForecastPoint) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "kind", "volume", "lower", "upper"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range points {
		lower, upper := "", ""
		if p.Kind == model.PointForecast {
			lower = formatFloat(p.Lower)
			upper = formatFloat(p.Upper)
		}
		record := []string{
			p.Date.Format("2006-01-02"),
			string(p.Kind),
			formatFloat(p.Volume),
			lower,
			upper,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
