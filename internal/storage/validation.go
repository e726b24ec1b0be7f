package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salescope/salescope/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidSale  = errors.New("invalid sale")
	ErrInvalidBatch = errors.New("invalid import batch")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSales validates a slice of sales.
func validateSales(sales []model.Sale) error {
	if sales == nil {
		return fmt.Errorf("%w: sales", ErrNilParameter)
	}
	if len(sales) == 0 {
		return fmt.Errorf("%w: sales", ErrEmptySlice)
	}

	for i, sale := range sales {
		if err := validateSale(&sale); err != nil {
			return fmt.Errorf("sale at index %d: %w", i, err)
		}
	}
	return nil
}

// validateSale validates a single sale. Only structural fields are checked;
// volumes and prices are stored as-is, matching the loose typing of the
// uploaded rows.
func validateSale(sale *model.Sale) error {
	if sale == nil {
		return fmt.Errorf("%w: sale", ErrNilParameter)
	}
	if sale.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSale)
	}
	if sale.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSale)
	}
	if sale.Product == "" {
		return fmt.Errorf("%w: missing product", ErrInvalidSale)
	}
	return nil
}

// validateImportBatch validates an import batch record.
func validateImportBatch(batch *model.ImportBatch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	if batch.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBatch)
	}
	if batch.FileHash == "" {
		return fmt.Errorf("%w: missing file hash", ErrInvalidBatch)
	}
	return nil
}
