package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
)

// SaveImportBatch records one ingested file.
func (s *SQLiteStorage) SaveImportBatch(ctx context.Context, batch *model.ImportBatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateImportBatch(batch); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveImportBatchTx(ctx, tx, batch); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveImportBatchTx(ctx context.Context, tx *sql.Tx, batch *model.ImportBatch) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO import_batches (id, source_file, file_hash, rows_read, rows_saved, rows_skipped, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_hash) DO UPDATE SET
			source_file = excluded.source_file,
			rows_read = excluded.rows_read,
			rows_saved = excluded.rows_saved,
			rows_skipped = excluded.rows_skipped,
			imported_at = excluded.imported_at
	`, batch.ID, batch.SourceFile, batch.FileHash, batch.RowsRead, batch.RowsSaved, batch.RowsSkipped, batch.ImportedAt)
	if err != nil {
		return fmt.Errorf("failed to save import batch: %w", err)
	}
	return nil
}

// GetImportBatchByHash looks up a previous import of the same file content.
// Returns ErrNotFound when the file has never been imported.
func (s *SQLiteStorage) GetImportBatchByHash(ctx context.Context, fileHash string) (*model.ImportBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(fileHash, "fileHash"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_file, file_hash, rows_read, rows_saved, rows_skipped, imported_at
		FROM import_batches WHERE file_hash = ?
	`, fileHash)

	var batch model.ImportBatch
	err := row.Scan(&batch.ID, &batch.SourceFile, &batch.FileHash,
		&batch.RowsRead, &batch.RowsSaved, &batch.RowsSkipped, &batch.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import batch: %w", err)
	}

	return &batch, nil
}

// GetImportBatches returns all recorded imports, newest first.
func (s *SQLiteStorage) GetImportBatches(ctx context.Context) ([]model.ImportBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, file_hash, rows_read, rows_saved, rows_skipped, imported_at
		FROM import_batches ORDER BY imported_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	batches := make([]model.ImportBatch, 0)
	for rows.Next() {
		var batch model.ImportBatch
		if err := rows.Scan(&batch.ID, &batch.SourceFile, &batch.FileHash,
			&batch.RowsRead, &batch.RowsSaved, &batch.RowsSkipped, &batch.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}
