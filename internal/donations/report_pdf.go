package donations

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderReportPDF builds a tabular PDF of the filtered donations.
func RenderReportPDF(rows []Donation, filter Filter) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Donations Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Donations Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, filterCaption(filter))
	pdf.Ln(10)

	headers := []string{"Receipt #", "Donor Code", "Date", "Method", "Purpose", "Amount"}
	widths := []float64{22, 30, 26, 24, 58, 30}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, head := range headers {
		pdf.CellFormat(widths[i], 8, head, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var total float64
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", row.ReceiptNo), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.DonorCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.Date.Format("02/01/2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, row.PaymentMethod, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, strings.Join(row.Purposes, ", "), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.2f", row.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		total += row.Amount
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 8, fmt.Sprintf("%.2f", total), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func filterCaption(filter Filter) string {
	var parts []string
	if filter.DonorCode != "" {
		parts = append(parts, "donor "+filter.DonorCode)
	}
	if filter.PaymentMethod != "" {
		parts = append(parts, "method "+filter.PaymentMethod)
	}
	if filter.Purpose != "" {
		parts = append(parts, "purpose "+filter.Purpose)
	}
	if !filter.From.IsZero() {
		parts = append(parts, "from "+filter.From.Format("02/01/2006"))
	}
	if !filter.To.IsZero() {
		parts = append(parts, "to "+filter.To.Format("02/01/2006"))
	}
	if len(parts) == 0 {
		return "All donations"
	}
	return "Filtered by " + strings.Join(parts, ", ")
}
