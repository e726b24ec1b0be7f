package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/common"
)

const sampleCSV = `Date,Sales Volume,Product Type,Location,Price,Customer Type
2024-01-01,10,Espresso,Downtown,2.50,Retail
2024-01-02,5,Latte,Airport,3.00,Wholesale
2024-01-03,8,Espresso,Downtown,2.50,Retail
`

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	ctx := context.Background()

	result, err := parser.Parse(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, result.Sales, 3)
	assert.Equal(t, 3, result.RowsRead)
	assert.Equal(t, 0, result.RowsSkipped)

	first := result.Sales[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Espresso", first.Product)
	assert.Equal(t, "Downtown", first.Location)
	assert.Equal(t, "Retail", first.CustomerType)
	assert.InDelta(t, 10.0, first.Volume, 1e-9)
	assert.InDelta(t, 2.50, first.UnitPrice, 1e-9)
	assert.InDelta(t, 25.0, first.Revenue(), 1e-9)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Hash)
}

func TestCSVParser_Parse_HeaderSynonyms(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "canonical headers",
			header: "date,volume,product,location,price,customer type",
		},
		{
			name:   "mixed case and synonyms",
			header: "Order Date,Qty,Item,Region,Amount,Segment",
		},
		{
			name:   "decorated headers fall back to substring match",
			header: "Sale Date,Units Sold (total),Product Category,Store #,Unit Price (USD),Customer Type",
		},
		{
			name:   "extra columns are ignored",
			header: "id,date,volume,product,location,price,customer type,notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.header + "\n2024-03-05,7,Mocha,Harbor,4.25,Retail"
			if strings.HasPrefix(tt.header, "id,") {
				data = tt.header + "\nrow-1,2024-03-05,7,Mocha,Harbor,4.25,Retail,hello"
			}

			result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(data))
			require.NoError(t, err)
			require.Len(t, result.Sales, 1)
			assert.InDelta(t, 7.0, result.Sales[0].Volume, 1e-9)
			assert.Equal(t, "Mocha", result.Sales[0].Product)
		})
	}
}

func TestCSVParser_Parse_MissingColumns(t *testing.T) {
	data := "date,volume,product\n2024-01-01,10,Espresso"

	_, err := NewCSVParser().Parse(context.Background(), strings.NewReader(data))
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ElementsMatch(t, []string{"location", "price", "customer type"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestCSVParser_Parse_BadRows(t *testing.T) {
	data := sampleCSV +
		"not-a-date,10,Espresso,Downtown,2.50,Retail\n" +
		",3,Latte,Airport,3.00,Retail\n" +
		"2024-01-04,oops,Latte,Airport,bad,\n"

	result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 6, result.RowsRead)
	assert.Equal(t, 2, result.RowsSkipped)
	require.Len(t, result.Sales, 4)

	// Unparseable numerics become zero, empty labels become Unknown
	last := result.Sales[3]
	assert.Zero(t, last.Volume)
	assert.Zero(t, last.UnitPrice)
	assert.Equal(t, "Unknown", last.CustomerType)
}

func TestCSVParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		data    string
	}{
		{name: "empty file", data: "", wantErr: common.ErrUnreadableFile},
		{name: "header only", data: "date,volume,product,location,price,customer type\n", wantErr: common.ErrNoDataRows},
		{name: "malformed quoting", data: "date,volume\n\"unterminated", wantErr: common.ErrUnreadableFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse(context.Background(), strings.NewReader(tt.data))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestParserForFile(t *testing.T) {
	p, err := ParserForFile("/tmp/sales.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	p, err = ParserForFile("report.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)

	_, err = ParserForFile("notes.txt")
	assert.ErrorIs(t, err, common.ErrUnsupportedInput)
}
