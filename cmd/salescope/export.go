package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/report"
	"github.com/salescope/salescope/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the analysis report",
		Long: `Export runs the full analysis pass over the filtered dataset and writes
the result to the chosen destination.

Formats:
  csv     filtered sales table as CSV (default)
  pdf     one-document report: KPIs, products, forecast, recommendations
  sheets  Google Sheets spreadsheet with Summary, Daily Series, Forecast,
          and Recommendations tabs (requires Google credentials)`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("format", "csv", "Export format (csv, pdf, sheets)")
	cmd.Flags().StringP("output", "o", "", "Output file path (csv and pdf formats)")
	cmd.Flags().String("method", "holt-winters", "Forecast method (linear, holt-winters)")
	cmd.Flags().Int("horizon", 30, "Number of days to forecast")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	session, err := loadSession(ctx, store, filter)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	method, _ := cmd.Flags().GetString("method")
	horizon, _ := cmd.Flags().GetInt("horizon")

	switch format {
	case "csv":
		if output == "" {
			return report.WriteSalesCSV(os.Stdout, session.Sales())
		}
		f, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.WriteSalesCSV(f, session.Sales()); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Exported %d rows to %s", len(session.Sales()), output)))
		return nil

	case "pdf":
		if output == "" {
			output = "salescope-report.pdf"
		}
		f, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.WritePDF(f, buildReport(session, method, horizon)); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess("Exported PDF report to " + output))
		return nil

	case "sheets":
		sheetsConfig, err := config.LoadSheetsConfig()
		if err != nil {
			return fmt.Errorf("failed to load Google Sheets config: %w", err)
		}
		writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
		if err != nil {
			return err
		}
		if err := writer.Write(ctx, buildReport(session, method, horizon)); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess("Exported report to Google Sheets"))
		return nil

	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
