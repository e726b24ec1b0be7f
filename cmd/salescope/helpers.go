package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salescope/salescope/internal/analysis"
	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/forecast"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/recommend"
	"github.com/salescope/salescope/internal/service"
	"github.com/salescope/salescope/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/salescope/salescope.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// addFilterFlags registers the shared dataset filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("start-date", "s", "", "Only include sales on or after this date (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "Only include sales on or before this date (format: 2006-01-02)")
	cmd.Flags().StringSlice("products", []string{}, "Filter by product categories (comma-separated)")
	cmd.Flags().StringSlice("locations", []string{}, "Filter by locations (comma-separated)")
	cmd.Flags().StringSlice("customer-types", []string{}, "Filter by customer types (comma-separated)")
}

// filterFromFlags builds the analysis filter from the shared flags.
func filterFromFlags(cmd *cobra.Command) (analysis.Filter, error) {
	var filter analysis.Filter

	if startStr, _ := cmd.Flags().GetString("start-date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return filter, fmt.Errorf("invalid start date format: %w", err)
		}
		filter.StartDate = &start
	}
	if endStr, _ := cmd.Flags().GetString("end-date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return filter, fmt.Errorf("invalid end date format: %w", err)
		}
		filter.EndDate = &end
	}

	filter.Products, _ = cmd.Flags().GetStringSlice("products")
	filter.Locations, _ = cmd.Flags().GetStringSlice("locations")
	filter.CustomerTypes, _ = cmd.Flags().GetStringSlice("customer-types")

	return filter, nil
}

// storeFilter translates the shared filter flags into a query filter so the
// database only returns matching rows.
func storeFilter(filter analysis.Filter) service.SaleFilter {
	return service.SaleFilter{
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
		Products:      filter.Products,
		Locations:     filter.Locations,
		CustomerTypes: filter.CustomerTypes,
	}
}

// loadSession loads the filtered dataset into an analysis session.
func loadSession(ctx context.Context, store service.Storage, filter analysis.Filter) (*analysis.Session, error) {
	sales, err := store.GetSales(ctx, storeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if len(sales) == 0 {
		count, countErr := store.CountSales(ctx)
		if countErr == nil && count == 0 {
			return nil, fmt.Errorf("%w: import some files first", common.ErrNoSales)
		}
		return nil, common.ErrNoSales
	}

	session := analysis.NewSession(sales)
	session.SetFilter(filter)

	return session, nil
}

// runForecast fits the requested model to the session's daily series. When
// the seasonal model refuses for lack of history it falls back to the linear
// trend with a note explaining why.
func runForecast(session *analysis.Session, method string, horizon int) ([]model.ForecastPoint, string, error) {
	fc, err := forecast.New(method)
	if err != nil {
		return nil, "", err
	}

	daily := session.Daily()
	points, err := fc.Forecast(daily, horizon)
	if err == nil {
		return points, fmt.Sprintf("%s model over %d days of history", fc.Name(), len(daily)), nil
	}
	if !errors.Is(err, common.ErrInsufficientHistory) {
		return nil, "", err
	}

	slog.Warn("Not enough history for seasonal model, falling back to linear trend", "error", err)
	linear, _ := forecast.New("linear")
	points, linErr := linear.Forecast(daily, horizon)
	if linErr != nil {
		return nil, "", linErr
	}
	note := fmt.Sprintf("%v; fell back to linear trend over %d days of history", err, len(daily))
	return points, note, nil
}

// buildReport assembles the full report for the session: KPIs, daily series,
// forecast, and recommendations.
func buildReport(session *analysis.Session, method string, horizon int) *service.Report {
	report := &service.Report{
		GeneratedAt:   time.Now(),
		FilterSummary: session.Filter().Summary(),
		KPIs:          session.KPIs(),
		Daily:         session.Daily(),
	}

	points, note, err := runForecast(session, method, horizon)
	if err != nil {
		slog.Warn("Forecast unavailable", "error", err)
		report.ForecastNote = fmt.Sprintf("forecast unavailable: %v", err)
	} else {
		report.Forecast = points
		report.ForecastNote = note
	}

	report.Recommendations = recommend.NewEngine().Generate(session)

	return report
}
