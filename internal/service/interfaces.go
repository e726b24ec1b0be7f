// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/salescope/salescope/internal/model"
)

// SaleFilter defines filtering options for sales queries. Nil/empty fields
// leave that dimension unrestricted.
type SaleFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Products      []string
	Locations     []string
	CustomerTypes []string
	Limit         int
	Offset        int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Sale operations
	SaveSales(ctx context.Context, sales []model.Sale) (int, error)
	GetSales(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
	CountSales(ctx context.Context) (int, error)
	GetDateRange(ctx context.Context) (*DateRange, error)
	GetProducts(ctx context.Context) ([]string, error)
	GetLocations(ctx context.Context) ([]string, error)
	GetCustomerTypes(ctx context.Context) ([]string, error)
	DeleteAllSales(ctx context.Context) error

	// Import batch operations
	SaveImportBatch(ctx context.Context, batch *model.ImportBatch) error
	GetImportBatchByHash(ctx context.Context, fileHash string) (*model.ImportBatch, error)
	GetImportBatches(ctx context.Context) ([]model.ImportBatch, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	SaveSales(ctx context.Context, sales []model.Sale) (int, error)
	SaveImportBatch(ctx context.Context, batch *model.ImportBatch) error
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// KPISet contains the aggregate metrics shown at a glance.
type KPISet struct {
	DateRange             DateRange
	VolumeByProduct       map[string]float64
	RevenueByProduct      map[string]float64
	RevenueByLocation     map[string]float64
	RevenueByCustomerType map[string]float64
	TotalVolume           float64
	TotalRevenue          float64
	AvgUnitPrice          float64
	Orders                int
}

// Report bundles everything one analysis pass produces, ready for export.
type Report struct {
	GeneratedAt     time.Time
	FilterSummary   string
	KPIs            KPISet
	Daily           model.DailySeries
	Forecast        []model.ForecastPoint
	ForecastNote    string
	Recommendations []model.Recommendation
}

// ReportWriter exports a finished report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
