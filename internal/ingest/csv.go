package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/salescope/salescope/internal/common"
)

// CSVParser reads sales records from CSV files.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads the full CSV stream and converts it to sales records.
func (p *CSVParser) Parse(_ context.Context, r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableFile, err)
	}
	if len(records) == 0 {
		return nil, common.ErrUnreadableFile
	}
	if len(records) < 2 {
		return nil, common.ErrNoDataRows
	}

	columns, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	return buildSales(records[1:], columns), nil
}
