package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/recommend"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate recommendations from the imported dataset",
		Long: `Recommend runs a fixed set of heuristic checks over the filtered dataset:
weekly seasonality, top products, customer segments, location performance,
month-over-month trend, and price sensitivity. Checks that lack enough
data stay silent; when none can speak, a single "insufficient data" note
is returned instead.`,
		RunE: runRecommend,
	}

	addFilterFlags(cmd)

	return cmd
}

func runRecommend(cmd *cobra.Command, _ []string) error {
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

	recommendations := recommend.NewEngine().Generate(session)

	fmt.Fprintln(os.Stdout, cli.FormatTitle("Recommendations"))
	fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("Scope: "+session.Filter().Summary()))
	fmt.Fprintln(os.Stdout)
	for i, rec := range recommendations {
		fmt.Fprintf(os.Stdout, "  %d. %s\n", i+1, rec.Text)
	}

	return nil
}
