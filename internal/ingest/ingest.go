// Package ingest reads transactional sales records from uploaded
// spreadsheet files (CSV or XLSX) into model.Sale rows.
package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
)

// Result holds the outcome of parsing one file. Rows whose date cannot be
// parsed are counted in RowsSkipped; no other per-row validation is applied.
type Result struct {
	Sales       []model.Sale
	RowsRead    int
	RowsSkipped int
}

// Parser reads sales records from a spreadsheet stream.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (*Result, error)
}

// ParserForFile selects a parser based on the file extension.
func ParserForFile(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xlsm":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedInput, filepath.Ext(path))
	}
}

// The six required columns. Extra columns in the file are ignored.
const (
	columnDate     = "date"
	columnVolume   = "volume"
	columnProduct  = "product"
	columnLocation = "location"
	columnPrice    = "price"
	columnCustomer = "customer type"
)

var requiredColumns = []string{
	columnDate, columnVolume, columnProduct, columnLocation, columnPrice, columnCustomer,
}

// Header synonyms seen across exported spreadsheets. Matching is
// case-insensitive; an exact synonym wins over a substring match.
var columnSynonyms = map[string][]string{
	columnDate:     {"date", "sale date", "order date", "day"},
	columnVolume:   {"volume", "sales volume", "quantity", "qty", "units", "units sold"},
	columnProduct:  {"product", "product type", "product category", "item", "category"},
	columnLocation: {"location", "region", "store", "city", "outlet"},
	columnPrice:    {"price", "unit price", "amount", "unit cost"},
	columnCustomer: {"customer type", "customer", "segment", "client type", "buyer type"},
}

// resolveColumns maps each required column to its index in the header row.
// Missing required columns produce a SchemaError naming all of them.
func resolveColumns(header []string) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(map[string]int, len(requiredColumns))
	for _, required := range requiredColumns {
		idx := -1
		for _, synonym := range columnSynonyms[required] {
			for i, h := range normalized {
				if h == synonym {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			// Fall back to substring matching for decorated headers
			// like "Unit Price (USD)"
			for _, synonym := range columnSynonyms[required] {
				for i, h := range normalized {
					if strings.Contains(h, synonym) {
						idx = i
						break
					}
				}
				if idx >= 0 {
					break
				}
			}
		}
		if idx >= 0 {
			columns[required] = idx
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, common.NewSchemaError(missing)
	}

	return columns, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
