package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all imported sales data",
		Long: `Reset removes every imported sales record and the import history,
returning the database to an empty state.

This is a destructive operation; the original source files are untouched
and can be re-imported afterwards.`,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	count, err := store.CountSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sales: %w", err)
	}

	if count == 0 {
		if _, err := fmt.Fprintf(os.Stdout, "No sales found. Nothing to reset.\n"); err != nil {
			slog.Error("failed to write output", "error", err)
		}
		return nil
	}

	// Confirm with user unless --force is used
	if !force {
		if _, err := fmt.Fprintf(os.Stdout, "This will delete %d sales records and the import history.\n", count); err != nil {
			slog.Error("failed to write output", "error", err)
		}
		if _, err := fmt.Fprintf(os.Stdout, "\nAre you sure you want to continue? [y/N]: "); err != nil {
			slog.Error("failed to write output", "error", err)
		}

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			if _, err := fmt.Fprintf(os.Stdout, "Reset canceled.\n"); err != nil {
				slog.Error("failed to write output", "error", err)
			}
			return nil
		}
	}

	if err := store.DeleteAllSales(ctx); err != nil {
		return fmt.Errorf("failed to delete sales: %w", err)
	}

	if _, err := fmt.Fprintf(os.Stdout, "Deleted %d sales records.\n\nRun 'salescope import' to load fresh data.\n", count); err != nil {
		slog.Error("failed to write output", "error", err)
	}

	return nil
}
