package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/service"
)

// Writer implements the ReportWriter interface for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write implements the ReportWriter interface. It lays out four tabs:
// Summary, Daily Series, Forecast, and Recommendations.
func (w *Writer) Write(ctx context.Context, report *service.Report) error {
	data := buildTabData(report)

	w.logger.Info("starting spreadsheet export",
		"daily_points", len(data.Daily),
		"forecast_points", len(data.Forecast),
		"date_range", fmt.Sprintf("%s to %s", data.DateRange.Start.Format("2006-01-02"), data.DateRange.End.Format("2006-01-02")))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err := w.ensureTabs(ctx, spreadsheetID); err != nil {
		return fmt.Errorf("failed to prepare tabs: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	tabs := []struct {
		title  string
		values [][]any
	}{
		{TabSummary, buildSummaryValues(data)},
		{TabDailySeries, buildDailyValues(data)},
		{TabForecast, buildForecastValues(data)},
		{TabRecommendations, buildRecommendationValues(data)},
	}

	for _, tab := range tabs {
		if clearErr := w.clearTab(ctx, spreadsheetID, tab.title); clearErr != nil {
			return fmt.Errorf("failed to clear tab %q: %w", tab.title, clearErr)
		}

		values := tab.values
		title := tab.title
		err = common.WithRetry(ctx, func() error {
			return w.writeTab(ctx, spreadsheetID, title, values)
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write tab %q: %w", tab.title, err)
		}
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID)
		}, retryOpts)
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
			// Formatting is cosmetic; the data is already in place.
		}
	}

	w.logger.Info("spreadsheet export completed", "spreadsheet_id", spreadsheetID)

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: TabSummary}},
			{Properties: &sheets.SheetProperties{Title: TabDailySeries}},
			{Properties: &sheets.SheetProperties{Title: TabForecast}},
			{Properties: &sheets.SheetProperties{Title: TabRecommendations}},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// ensureTabs adds any of the four report tabs missing from an existing spreadsheet.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheetID string) error {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to read spreadsheet: %w", err)
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		existing[sheet.Properties.Title] = true
	}

	var requests []*sheets.Request
	for _, title := range []string{TabSummary, TabDailySeries, TabForecast, TabRecommendations} {
		if existing[title] {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// clearTab clears all data from a single tab.
func (w *Writer) clearTab(ctx context.Context, spreadsheetID, title string) error {
	rangeStr := fmt.Sprintf("'%s'!A:Z", title)
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// buildTabData converts a report into spreadsheet-ready row types.
func buildTabData(report *service.Report) *TabData {
	data := &TabData{
		DateRange: DateRange{
			Start: report.KPIs.DateRange.Start,
			End:   report.KPIs.DateRange.End,
		},
		FilterSummary:   report.FilterSummary,
		ForecastNote:    report.ForecastNote,
		TotalVolume:     decimal.NewFromFloat(report.KPIs.TotalVolume),
		TotalRevenue:    decimal.NewFromFloat(report.KPIs.TotalRevenue),
		AvgUnitPrice:    decimal.NewFromFloat(report.KPIs.AvgUnitPrice),
		Orders:          report.KPIs.Orders,
		Products:        make([]ProductRow, 0, len(report.KPIs.VolumeByProduct)),
		Daily:           make([]DailyRow, 0, len(report.Daily)),
		Forecast:        make([]ForecastRow, 0, len(report.Forecast)),
		Recommendations: make([]string, 0, len(report.Recommendations)),
	}

	for product, volume := range report.KPIs.VolumeByProduct {
		data.Products = append(data.Products, ProductRow{
			Product: product,
			Volume:  decimal.NewFromFloat(volume),
			Revenue: decimal.NewFromFloat(report.KPIs.RevenueByProduct[product]),
		})
	}
	sort.Slice(data.Products, func(i, j int) bool {
		if !data.Products[i].Volume.Equal(data.Products[j].Volume) {
			return data.Products[i].Volume.GreaterThan(data.Products[j].Volume)
		}
		return data.Products[i].Product < data.Products[j].Product
	})

	for _, point := range report.Daily {
		data.Daily = append(data.Daily, DailyRow{
			Date:    point.Date,
			Volume:  decimal.NewFromFloat(point.Volume),
			Revenue: decimal.NewFromFloat(point.Revenue),
		})
	}

	for _, point := range report.Forecast {
		row := ForecastRow{
			Date:   point.Date,
			Kind:   string(point.Kind),
			Volume: decimal.NewFromFloat(point.Volume),
		}
		if point.Kind == model.PointForecast {
			row.Lower = decimal.NewFromFloat(point.Lower)
			row.Upper = decimal.NewFromFloat(point.Upper)
		}
		data.Forecast = append(data.Forecast, row)
	}

	for _, rec := range report.Recommendations {
		data.Recommendations = append(data.Recommendations, rec.Text)
	}

	return data
}

// buildSummaryValues builds the Summary tab contents.
func buildSummaryValues(data *TabData) [][]any {
	values := make([][]any, 0, 12+len(data.Products))

	values = append(values,
		[]any{
			"Sales Analysis Report",
			fmt.Sprintf("%s - %s", data.DateRange.Start.Format("Jan 2, 2006"), data.DateRange.End.Format("Jan 2, 2006")),
		},
		[]any{"Scope", data.FilterSummary},
		[]any{}, // Empty row
		[]any{"Key Figures"},
		[]any{"Total Volume", data.TotalVolume},
		[]any{"Total Revenue", data.TotalRevenue},
		[]any{"Average Unit Price", data.AvgUnitPrice},
		[]any{"Orders", data.Orders},
		[]any{}, // Empty row
		[]any{"Product Breakdown"},
		[]any{"Product", "Volume", "Revenue"},
	)

	for _, row := range data.Products {
		values = append(values, []any{row.Product, row.Volume, row.Revenue})
	}

	return values
}

// buildDailyValues builds the Daily Series tab contents.
func buildDailyValues(data *TabData) [][]any {
	values := make([][]any, 0, 1+len(data.Daily))
	values = append(values, []any{"Date", "Volume", "Revenue"})

	for _, row := range data.Daily {
		values = append(values, []any{
			row.Date.Format("2006-01-02"),
			row.Volume,
			row.Revenue,
		})
	}

	return values
}

// buildForecastValues builds the Forecast tab contents.
func buildForecastValues(data *TabData) [][]any {
	values := make([][]any, 0, 2+len(data.Forecast))
	if data.ForecastNote != "" {
		values = append(values, []any{data.ForecastNote})
	}
	values = append(values, []any{"Date", "Kind", "Volume", "Lower", "Upper"})

	for _, row := range data.Forecast {
		record := []any{
			row.Date.Format("2006-01-02"),
			row.Kind,
			row.Volume,
		}
		if row.Kind == string(model.PointForecast) {
			record = append(record, row.Lower, row.Upper)
		}
		values = append(values, record)
	}

	return values
}

// buildRecommendationValues builds the Recommendations tab contents.
func buildRecommendationValues(data *TabData) [][]any {
	values := make([][]any, 0, 1+len(data.Recommendations))
	values = append(values, []any{"#", "Recommendation"})

	for i, text := range data.Recommendations {
		values = append(values, []any{i + 1, text})
	}

	return values
}

// writeTab writes the data to a single tab in batches.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("'%s'!A%d", title, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", title, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds headers and freezes the header row on every tab.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string) error {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to read spreadsheet: %w", err)
	}

	var requests []*sheets.Request
	for _, sheet := range spreadsheet.Sheets {
		sheetID := sheet.Properties.SheetId
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   5,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{
								Bold: true,
							},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   5,
					},
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err = w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
