// Package analysis holds the in-memory session over the uploaded dataset:
// filtering, daily aggregation, and KPI computation.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/salescope/salescope/internal/model"
)

// Filter restricts which rows feed into aggregation, forecasting, and
// recommendations. Nil/empty fields leave a dimension unrestricted.
type Filter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Products      []string
	Locations     []string
	CustomerTypes []string
}

// Match reports whether a sale passes the filter.
func (f Filter) Match(sale *model.Sale) bool {
	if f.StartDate != nil && sale.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && sale.Date.After(*f.EndDate) {
		return false
	}
	if len(f.Products) > 0 && !contains(f.Products, sale.Product) {
		return false
	}
	if len(f.Locations) > 0 && !contains(f.Locations, sale.Location) {
		return false
	}
	if len(f.CustomerTypes) > 0 && !contains(f.CustomerTypes, sale.CustomerType) {
		return false
	}
	return true
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil &&
		len(f.Products) == 0 && len(f.Locations) == 0 && len(f.CustomerTypes) == 0
}

// Summary renders the active restrictions for report headers.
func (f Filter) Summary() string {
	if f.IsZero() {
		return "all data"
	}

	var parts []string
	if f.StartDate != nil {
		parts = append(parts, "from "+f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		parts = append(parts, "to "+f.EndDate.Format("2006-01-02"))
	}
	if len(f.Products) > 0 {
		parts = append(parts, fmt.Sprintf("products: %s", strings.Join(f.Products, "/")))
	}
	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("locations: %s", strings.Join(f.Locations, "/")))
	}
	if len(f.CustomerTypes) > 0 {
		parts = append(parts, fmt.Sprintf("customers: %s", strings.Join(f.CustomerTypes, "/")))
	}
	return strings.Join(parts, ", ")
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
