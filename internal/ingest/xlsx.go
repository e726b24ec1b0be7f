package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/salescope/salescope/internal/common"
)

// XLSXParser reads sales records from Excel workbooks. Only the first
// sheet is read, matching how the dashboard treats uploads.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first sheet of the workbook and converts it to sales records.
func (p *XLSXParser) Parse(_ context.Context, r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrNoDataRows
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableFile, err)
	}
	if len(rows) < 2 {
		return nil, common.ErrNoDataRows
	}

	columns, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	return buildSales(rows[1:], columns), nil
}
