package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/service"
)

// SaveSales saves multiple sales to the database, skipping duplicates by
// hash. It returns the number of rows actually inserted.
func (s *SQLiteStorage) SaveSales(ctx context.Context, sales []model.Sale) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSales(sales); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	saved, err := s.saveSalesTx(ctx, tx, sales)
	if err != nil {
		return 0, err
	}

	return saved, tx.Commit()
}

func (s *SQLiteStorage) saveSalesTx(ctx context.Context, tx *sql.Tx, sales []model.Sale) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO sales (
			id, hash, date, product, location, customer_type, volume, unit_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	saved := 0
	for _, sale := range sales {
		// Generate hash if not already set
		if sale.Hash == "" {
			sale.Hash = sale.GenerateHash()
		}

		result, execErr := stmt.ExecContext(ctx,
			sale.ID,
			sale.Hash,
			sale.Date,
			sale.Product,
			sale.Location,
			sale.CustomerType,
			sale.Volume,
			sale.UnitPrice,
		)
		if execErr != nil {
			return saved, fmt.Errorf("failed to insert sale %s: %w", sale.ID, execErr)
		}

		rows, _ := result.RowsAffected()
		saved += int(rows)
	}

	return saved, nil
}

// GetSales returns sales matching the filter, ordered by date ascending.
func (s *SQLiteStorage) GetSales(ctx context.Context, filter service.SaleFilter) ([]model.Sale, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, product, location, customer_type, volume, unit_price
		FROM sales
	`
	where, args := buildSaleFilter(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY date ASC, id ASC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSales(rows)
}

// CountSales returns the total number of stored sales.
func (s *SQLiteStorage) CountSales(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

// GetDateRange returns the minimum and maximum sale dates, or ErrNotFound
// when no sales are stored.
func (s *SQLiteStorage) GetDateRange(ctx context.Context) (*service.DateRange, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var start, end sql.NullTime
	err := s.db.QueryRowContext(ctx, "SELECT MIN(date), MAX(date) FROM sales").Scan(&start, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}
	if !start.Valid || !end.Valid {
		return nil, common.ErrNotFound
	}

	return &service.DateRange{Start: start.Time, End: end.Time}, nil
}

// GetProducts returns the distinct product labels, alphabetically.
func (s *SQLiteStorage) GetProducts(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "product")
}

// GetLocations returns the distinct location labels, alphabetically.
func (s *SQLiteStorage) GetLocations(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "location")
}

// GetCustomerTypes returns the distinct customer-type labels, alphabetically.
func (s *SQLiteStorage) GetCustomerTypes(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "customer_type")
}

func (s *SQLiteStorage) distinctColumn(ctx context.Context, column string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// column is one of a fixed set of identifiers, never user input
	query := fmt.Sprintf("SELECT DISTINCT %s FROM sales WHERE %s != '' ORDER BY %s", column, column, column)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// DeleteAllSales removes every stored sale and import batch.
func (s *SQLiteStorage) DeleteAllSales(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{"DELETE FROM sales", "DELETE FROM import_batches"} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to delete: %w", err)
		}
	}

	return tx.Commit()
}

func buildSaleFilter(filter service.SaleFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if len(filter.Products) > 0 {
		conditions = append(conditions, inClause("product", len(filter.Products)))
		for _, p := range filter.Products {
			args = append(args, p)
		}
	}
	if len(filter.Locations) > 0 {
		conditions = append(conditions, inClause("location", len(filter.Locations)))
		for _, l := range filter.Locations {
			args = append(args, l)
		}
	}
	if len(filter.CustomerTypes) > 0 {
		conditions = append(conditions, inClause("customer_type", len(filter.CustomerTypes)))
		for _, c := range filter.CustomerTypes {
			args = append(args, c)
		}
	}

	return strings.Join(conditions, " AND "), args
}

func inClause(column string, n int) string {
	placeholders := strings.Repeat("?,", n)
	return fmt.Sprintf("%s IN (%s)", column, placeholders[:len(placeholders)-1])
}

func scanSales(rows *sql.Rows) ([]model.Sale, error) {
	sales := make([]model.Sale, 0)
	for rows.Next() {
		var sale model.Sale
		var date time.Time
		if err := rows.Scan(&sale.ID, &sale.Hash, &date, &sale.Product,
			&sale.Location, &sale.CustomerType, &sale.Volume, &sale.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.Date = date
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
