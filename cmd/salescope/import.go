package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/ingest"
	"github.com/salescope/salescope/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import sales records from CSV/XLSX files",
		Long: `Import transactional sales records from spreadsheet files.

Each file must carry the six required columns (date, sales volume, product
category, location, unit price, customer type); header naming is matched
loosely. Rows are deduplicated against already-imported data, and files
whose contents have not changed since the last import are skipped.

Examples:
  # Import single file
  salescope import ~/exports/sales_jan_2024.csv

  # Import multiple files
  salescope import ~/exports/sales_*.csv

  # Import a mixed batch
  salescope import ~/exports/*.csv ~/exports/*.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolP("force", "f", false, "Re-import files even if their contents are unchanged")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	slog.Info(cli.FormatTitle("Importing sales files"),
		"file_count", len(allFiles),
		"dry_run", dryRun)

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing files...[reset]"),
	)

	var totalRead, totalSaved, totalSkipped, filesSkipped int
	fileResults := make(map[string]int)

	for _, filePath := range allFiles {
		name := filepath.Base(filePath)

		data, err := os.ReadFile(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to read file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		fileHash := fmt.Sprintf("%x", sha256.Sum256(data))

		// Skip files already imported with identical contents.
		if !force {
			existing, err := store.GetImportBatchByHash(ctx, fileHash)
			if err == nil && existing != nil {
				slog.Info("Skipping unchanged file",
					"file", name,
					"imported_at", existing.ImportedAt.Format("2006-01-02 15:04"))
				filesSkipped++
				_ = bar.Add(1)
				continue
			}
		}

		parser, err := ingest.ParserForFile(filePath)
		if err != nil {
			slog.Error("Unsupported file", "file", name, "error", err)
			_ = bar.Add(1)
			continue
		}

		result, err := parser.Parse(ctx, bytes.NewReader(data))
		if err != nil {
			slog.Error("Failed to parse file", "file", name, "error", err)
			_ = bar.Add(1)
			continue
		}

		if len(result.Sales) == 0 {
			slog.Warn("No usable rows found in file", "file", name)
			_ = bar.Add(1)
			continue
		}

		saved := len(result.Sales)
		if !dryRun {
			// Sales and the batch record commit together so an unchanged
			// file is never skipped before its rows actually landed.
			tx, err := store.BeginTx(ctx)
			if err != nil {
				slog.Error("Failed to begin transaction", "file", name, "error", err)
				_ = bar.Add(1)
				continue
			}

			saved, err = tx.SaveSales(ctx, result.Sales)
			if err != nil {
				_ = tx.Rollback()
				slog.Error("Failed to save sales", "file", name, "error", err)
				_ = bar.Add(1)
				continue
			}

			batch := &model.ImportBatch{
				ID:          uuid.NewString(),
				SourceFile:  name,
				FileHash:    fileHash,
				ImportedAt:  time.Now(),
				RowsRead:    result.RowsRead,
				RowsSaved:   saved,
				RowsSkipped: result.RowsSkipped,
			}
			if err := tx.SaveImportBatch(ctx, batch); err != nil {
				_ = tx.Rollback()
				slog.Error("Failed to record import batch", "file", name, "error", err)
				_ = bar.Add(1)
				continue
			}

			if err := tx.Commit(); err != nil {
				slog.Error("Failed to commit import", "file", name, "error", err)
				_ = bar.Add(1)
				continue
			}
		}

		totalRead += result.RowsRead
		totalSaved += saved
		totalSkipped += result.RowsSkipped
		fileResults[name] = saved

		slog.Debug("Processed file",
			"file", name,
			"rows_read", result.RowsRead,
			"rows_saved", saved,
			"rows_skipped", result.RowsSkipped)
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if dryRun {
		slog.Info(cli.FormatWarning("Dry run mode - no data saved"))
	}

	content := fmt.Sprintf(`Files processed: %d
Files skipped (unchanged): %d
Rows read: %d
Rows saved: %d
Rows skipped: %d

Per file:
`, len(fileResults), filesSkipped, totalRead, totalSaved, totalSkipped)
	for file, count := range fileResults {
		content += fmt.Sprintf("  - %s: %d rows\n", file, count)
	}

	slog.Info(cli.RenderBox("Import Summary", content))

	if totalSaved > 0 && !dryRun {
		slog.Info(cli.FormatSuccess("✓ Import complete!"))
	}

	return nil
}
