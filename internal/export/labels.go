package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/binpack/internal/model"
)

// LabelInfo holds the data encoded into each item label's QR code.
type LabelInfo struct {
	Index    int     `json:"item"` // 1-based position in the expanded item list
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Bin      int     `json:"bin"` // 1-based
	BinLoad  float64 `json:"bin_load"`
	Capacity float64 `json:"capacity"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per packed item, in
// bin order. Each QR code encodes the item's LabelInfo as JSON so a scanner
// can tell which bin the item belongs in.
func ExportLabels(path string, inst model.Instance, sol model.Solution) error {
	labels, err := CollectLabelInfos(inst, sol)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		return fmt.Errorf("no packed items to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_item_%d", info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	itemLabel := truncateToWidth(info.Label, textW, pdf.GetStringWidth)
	pdf.CellFormat(textW, 4.5, itemLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, "Weight "+formatNumber(info.Weight), "", 1, "L", false, 0, "")

	// Destination bin, prominent so it reads from a distance
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(textX, y+labelPadding+9.5)
	pdf.CellFormat(textW, 5, fmt.Sprintf("BIN %d", info.Bin), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+15.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Load %s / %s", formatNumber(info.BinLoad), formatNumber(info.Capacity)), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos lists one LabelInfo per item, grouped by bin in bin order.
// Bins are renumbered 1..k so labels never show gaps in the bin sequence.
func CollectLabelInfos(inst model.Instance, sol model.Solution) ([]LabelInfo, error) {
	weights := inst.Weights()
	if len(sol.Assignment) != len(weights) {
		return nil, fmt.Errorf("assignment has %d entries for %d items", len(sol.Assignment), len(weights))
	}
	names := inst.Labels()

	var labels []LabelInfo
	for n, b := range sol.Bins(weights, inst.Capacity) {
		for k, idx := range b.Items {
			labels = append(labels, LabelInfo{
				Index:    idx + 1,
				Label:    names[idx],
				Weight:   b.Weights[k],
				Bin:      n + 1,
				BinLoad:  b.Load,
				Capacity: inst.Capacity,
			})
		}
	}
	return labels, nil
}

// truncateToWidth shortens s with a trailing "..." until it fits maxW as
// measured by width. Characters are dropped whole, never split mid rune.
func truncateToWidth(s string, maxW float64, width func(string) float64) string {
	if width(s) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && width(string(runes)+"...") > maxW {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
