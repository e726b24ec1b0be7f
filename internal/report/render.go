// Package report renders an analysis pass for humans: styled terminal
// output, CSV files, and a PDF summary.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/service"
)

// Render writes the styled terminal report.
func Render(w io.Writer, report *service.Report) error {
	fmt.Fprintln(w, cli.FormatTitle("Sales Analysis"))
	fmt.Fprintln(w, cli.SubtleStyle.Render("Scope: "+report.FilterSummary))
	fmt.Fprintln(w)

	fmt.Fprintln(w, cli.RenderBox("KPIs", kpiSummary(&report.KPIs)))
	fmt.Fprintln(w)

	if len(report.KPIs.VolumeByProduct) > 0 {
		fmt.Fprintln(w, cli.TitleStyle.Render("Volume by product"))
		renderProductTable(w, &report.KPIs)
		fmt.Fprintln(w)
	}

	if len(report.Forecast) > 0 {
		fmt.Fprintln(w, cli.TitleStyle.Render("Forecast"))
		if report.ForecastNote != "" {
			fmt.Fprintln(w, cli.SubtleStyle.Render(report.ForecastNote))
		}
		renderForecastTable(w, report.Forecast)
		fmt.Fprintln(w)
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(w, cli.TitleStyle.Render("Recommendations"))
		for i, rec := range report.Recommendations {
			fmt.Fprintf(w, "  %d. %s\n", i+1, rec.Text)
		}
	}

	return nil
}

func kpiSummary(kpis *service.KPISet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period:        %s to %s\n",
		kpis.DateRange.Start.Format("2006-01-02"),
		kpis.DateRange.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Orders:        %d\n", kpis.Orders)
	fmt.Fprintf(&b, "Total volume:  %.0f\n", kpis.TotalVolume)
	fmt.Fprintf(&b, "Total revenue: %.2f\n", kpis.TotalRevenue)
	fmt.Fprintf(&b, "Avg price:     %.2f", kpis.AvgUnitPrice)
	return b.String()
}

func renderProductTable(w io.Writer, kpis *service.KPISet) {
	products := make([]string, 0, len(kpis.VolumeByProduct))
	for p := range kpis.VolumeByProduct {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return kpis.VolumeByProduct[products[i]] > kpis.VolumeByProduct[products[j]]
	})

	table := tablewriter.NewTable(w)
	table.Header([]string{"Product", "Volume", "Revenue"})
	for _, p := range products {
		table.Append([]string{
			p,
			fmt.Sprintf("%.0f", kpis.VolumeByProduct[p]),
			fmt.Sprintf("%.2f", kpis.RevenueByProduct[p]),
		})
	}
	table.Render()
}

// RenderForecast writes just the forecast table, without the rest of the report.
func RenderForecast(w io.Writer, points []model.ForecastPoint) error {
	renderForecastTable(w, points)
	return nil
}

// renderForecastTable shows the last week of history plus every projected
// point, so the actual-to-forecast handoff is visible.
func renderForecastTable(w io.Writer, points []model.ForecastPoint) {
	firstForecast := len(points)
	for i, p := range points {
		if p.Kind == model.PointForecast {
			firstForecast = i
			break
		}
	}
	start := firstForecast - 7
	if start < 0 {
		start = 0
	}

	table := tablewriter.NewTable(w)
	table.Header([]string{"Date", "Kind", "Volume", "Low", "High"})
	for _, p := range points[start:] {
		low, high := "", ""
		if p.Kind == model.PointForecast {
			low = fmt.Sprintf("%.1f", p.Lower)
			high = fmt.Sprintf("%.1f", p.Upper)
		}
		table.Append([]string{
			p.Date.Format("2006-01-02"),
			string(p.Kind),
			fmt.Sprintf("%.1f", p.Volume),
			low,
			high,
		})
	}
	table.Render()
}
