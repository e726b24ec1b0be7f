package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/report"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the imported dataset",
		Long: `Analyze computes KPIs, the daily sales series, a volume forecast, and
recommendations over the imported dataset, then renders the full report
to the terminal.

The dataset can be narrowed with the shared filter flags; every figure in
the report reflects only the rows that pass the filter.`,
		RunE: runAnalyze,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("method", "holt-winters", "Forecast method (linear, holt-winters)")
	cmd.Flags().Int("horizon", 30, "Number of days to forecast")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
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

	return report.Render(os.Stdout, buildReport(session, method, horizon))
}
