// Package export provides functionality for exporting packing results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/binpack/internal/model"
)

// itemColor represents an RGB color for a packed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	binsPerPage  = 12
	barGap       = 6.0
)

// ExportPDF renders a packing as a PDF: pages of bin columns drawn to scale,
// each stacked with its items, followed by a summary page.
func ExportPDF(path string, inst model.Instance, sol model.Solution) error {
	weights := inst.Weights()
	if len(sol.Assignment) != len(weights) {
		return fmt.Errorf("assignment has %d entries for %d items", len(sol.Assignment), len(weights))
	}
	bins := sol.Bins(weights, inst.Capacity)
	if len(bins) == 0 {
		return fmt.Errorf("no bins to export")
	}
	// Number bins 1..k on every page regardless of the ids the solver used.
	for i := range bins {
		bins[i].ID = i
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	labels := inst.Labels()
	pages := (len(bins) + binsPerPage - 1) / binsPerPage
	for p := 0; p < pages; p++ {
		end := (p + 1) * binsPerPage
		if end > len(bins) {
			end = len(bins)
		}
		pdf.AddPage()
		renderBinsPage(pdf, inst, bins[p*binsPerPage:end], labels, p+1, pages)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, inst, sol, bins)

	return pdf.OutputFileAndClose(path)
}

// renderBinsPage draws one page of bins as vertical bars scaled to capacity.
func renderBinsPage(pdf *fpdf.Fpdf, inst model.Instance, bins []model.Bin, labels []string, page, pages int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: bins (page %d of %d)", inst.Name, page, pages)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("Capacity: %s per bin", formatNumber(inst.Capacity)), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 12
	barWidth := (drawWidth - barGap*float64(binsPerPage-1)) / float64(binsPerPage)
	scale := drawHeight / inst.Capacity

	for i, b := range bins {
		x := marginLeft + float64(i)*(barWidth+barGap)
		bottom := drawAreaTop + drawHeight

		// Empty bin outline
		pdf.SetFillColor(235, 235, 235)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x, drawAreaTop, barWidth, drawHeight, "FD")

		// Items stacked from the bottom
		y := bottom
		for k, idx := range b.Items {
			h := b.Weights[k] * scale
			y -= h
			col := itemColors[idx%len(itemColors)]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.2)
			pdf.Rect(x, y, barWidth, h, "FD")

			if h > 4 {
				pdf.SetFont("Helvetica", "", labelFontSize(barWidth, h))
				pdf.SetTextColor(0, 0, 0)
				text := fmt.Sprintf("%s (%s)", labels[idx], formatNumber(b.Weights[k]))
				if pdf.GetStringWidth(text) > barWidth-1 {
					text = formatNumber(b.Weights[k])
				}
				tw := pdf.GetStringWidth(text)
				if tw < barWidth-1 {
					pdf.SetXY(x+(barWidth-tw)/2, y+h/2-2)
					pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
				}
			}
		}

		// Bin caption below the bar
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x, bottom+1)
		pdf.CellFormat(barWidth, 4, fmt.Sprintf("Bin %d", b.ID+1), "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(x, bottom+5)
		pdf.CellFormat(barWidth, 4, fmt.Sprintf("%.1f%%", b.Fill()), "", 0, "C", false, 0, "")
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, inst model.Instance, sol model.Solution, bins []model.Bin) {
	weights := inst.Weights()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	proven := "no"
	if sol.Optimal {
		proven = "yes"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Items", fmt.Sprintf("%d", len(weights))},
		{"Bin Capacity", formatNumber(inst.Capacity)},
		{"Total Weight", formatNumber(inst.TotalWeight())},
		{"Bins Used", fmt.Sprintf("%d", len(bins))},
		{"Lower Bound", fmt.Sprintf("%d", inst.LowerBound())},
		{"Proven Optimal", proven},
		{"Efficiency", fmt.Sprintf("%.1f%%", sol.Efficiency(weights, inst.Capacity))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 25, 35, 35, 30}
	headers := []string{"Bin", "Items", "Load", "Free", "Fill"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, b := range bins {
		// Continue the table on a fresh page when the current one is full.
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", b.ID+1),
			fmt.Sprintf("%d", len(b.Items)),
			formatNumber(b.Load),
			formatNumber(b.Free()),
			fmt.Sprintf("%.1f%%", b.Fill()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by binpack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// formatNumber prints integral values without decimals and others with two.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
