package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/report"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast future sales volume",
		Long: `Forecast fits a model to the daily volume series and projects it into
the future. The seasonal model (holt-winters) needs at least 30 days of
history; with less, the command falls back to the linear trend and says so.

Forecast points carry an illustrative ±20% band, not a statistical
prediction interval.`,
		RunE: runForecastCmd,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("method", "m", "holt-winters", "Forecast method (linear, holt-winters)")
	cmd.Flags().IntP("horizon", "n", 30, "Number of days to forecast")
	cmd.Flags().StringP("output", "o", "", "Write the combined series as CSV to this file instead of the terminal")

	return cmd
}

func runForecastCmd(cmd *cobra.Command, _ []string) error {
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

	method, _ := cmd.Flags().GetString("method")
	horizon, _ := cmd.Flags().GetInt("horizon")

	points, note, err := runForecast(session, method, horizon)
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		f, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return report.WriteForecastCSV(f, points)
	}

	fmt.Println(note)
	return report.RenderForecast(os.Stdout, points)
}
