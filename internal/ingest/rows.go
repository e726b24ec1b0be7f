package ingest

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/salescope/salescope/internal/model"
)

// buildSales converts raw rows into Sale records using the resolved column
// map. Rows without a parseable date are skipped; numeric parse failures
// yield zero values, matching the loose typing of the source data.
func buildSales(rows [][]string, columns map[string]int) *Result {
	result := &Result{Sales: make([]model.Sale, 0, len(rows))}

	for _, row := range rows {
		result.RowsRead++

		dateStr := cell(row, columns[columnDate])
		if dateStr == "" {
			result.RowsSkipped++
			continue
		}
		date, err := ParseDate(dateStr)
		if err != nil {
			result.RowsSkipped++
			continue
		}

		sale := model.Sale{
			ID:           uuid.NewString(),
			Date:         date,
			Product:      defaultLabel(cell(row, columns[columnProduct])),
			Location:     defaultLabel(cell(row, columns[columnLocation])),
			CustomerType: defaultLabel(cell(row, columns[columnCustomer])),
			Volume:       parseNumber(cell(row, columns[columnVolume])),
			UnitPrice:    parseNumber(cell(row, columns[columnPrice])),
		}
		sale.Hash = sale.GenerateHash()

		result.Sales = append(result.Sales, sale)
	}

	return result
}

// parseNumber parses a float, tolerating thousands separators. Unparseable
// values become zero rather than failing the row.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func defaultLabel(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
