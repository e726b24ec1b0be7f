package ingest

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salescope/salescope/internal/common"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXParser_Parse(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Date", "Sales Volume", "Product Type", "Location", "Price", "Customer Type"},
		{"2024-01-01", 10, "Espresso", "Downtown", 2.5, "Retail"},
		{"2024-01-02", 5, "Latte", "Airport", 3.0, "Wholesale"},
	})

	result, err := NewXLSXParser().Parse(context.Background(), buf)
	require.NoError(t, err)

	require.Len(t, result.Sales, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result.Sales[0].Date)
	assert.Equal(t, "Espresso", result.Sales[0].Product)
	assert.InDelta(t, 10.0, result.Sales[0].Volume, 1e-9)
	assert.InDelta(t, 3.0, result.Sales[1].UnitPrice, 1e-9)
}

func TestXLSXParser_Parse_MissingColumns(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Date", "Sales Volume", "Product Type"},
		{"2024-01-01", 10, "Espresso"},
	})

	_, err := NewXLSXParser().Parse(context.Background(), buf)
	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ElementsMatch(t, []string{"location", "price", "customer type"}, schemaErr.Missing)
}

func TestXLSXParser_Parse_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse(context.Background(), strings.NewReader("definitely not a zip"))
	assert.ErrorIs(t, err, common.ErrUnreadableFile)
}

func TestXLSXParser_Parse_HeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Date", "Sales Volume", "Product Type", "Location", "Price", "Customer Type"},
	})

	_, err := NewXLSXParser().Parse(context.Background(), buf)
	assert.ErrorIs(t, err, common.ErrNoDataRows)
}
