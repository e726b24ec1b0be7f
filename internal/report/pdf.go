package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/service"
)

// WritePDF produces a one-document summary: KPIs, product breakdown,
// forecast table, and the recommendation text.
func WritePDF(w io.Writer, report *service.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Sales Analysis Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s — scope: %s",
		report.GeneratedAt.Format("2006-01-02 15:04"), report.FilterSummary), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	writePDFKPIs(pdf, &report.KPIs)
	writePDFProducts(pdf, &report.KPIs)
	writePDFForecast(pdf, report)
	writePDFRecommendations(pdf, report.Recommendations)

	return pdf.Output(w)
}

func writePDFKPIs(pdf *fpdf.Fpdf, kpis *service.KPISet) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Key figures", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Period", fmt.Sprintf("%s to %s",
			kpis.DateRange.Start.Format("2006-01-02"),
			kpis.DateRange.End.Format("2006-01-02"))},
		{"Orders", fmt.Sprintf("%d", kpis.Orders)},
		{"Total volume", fmt.Sprintf("%.0f", kpis.TotalVolume)},
		{"Total revenue", fmt.Sprintf("%.2f", kpis.TotalRevenue)},
		{"Average unit price", fmt.Sprintf("%.2f", kpis.AvgUnitPrice)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writePDFProducts(pdf *fpdf.Fpdf, kpis *service.KPISet) {
	if len(kpis.VolumeByProduct) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Volume by product", "", 1, "L", false, 0, "")

	products := make([]string, 0, len(kpis.VolumeByProduct))
	for p := range kpis.VolumeByProduct {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return kpis.VolumeByProduct[products[i]] > kpis.VolumeByProduct[products[j]]
	})

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Volume", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Revenue", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range products {
		pdf.CellFormat(80, 6, p, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", kpis.VolumeByProduct[p]), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", kpis.RevenueByProduct[p]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writePDFForecast(pdf *fpdf.Fpdf, report *service.Report) {
	var projected []model.ForecastPoint
	for _, p := range report.Forecast {
		if p.Kind == model.PointForecast {
			projected = append(projected, p)
		}
	}
	if len(projected) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Forecast", "", 1, "L", false, 0, "")

	if report.ForecastNote != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, report.ForecastNote, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Volume", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Low", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "High", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range projected {
		pdf.CellFormat(40, 6, p.Date.Format("2006-01-02"), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", p.Volume), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", p.Lower), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", p.Upper), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writePDFRecommendations(pdf *fpdf.Fpdf, recommendations []model.Recommendation) {
	if len(recommendations) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, rec := range recommendations {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, rec.Text), "", "L", false)
	}
}
