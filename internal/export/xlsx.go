package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/binpack/internal/bench"
	"github.com/piwi3910/binpack/internal/model"
)

// Sheet names used in generated workbooks.
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
	BinsSheet    = "Bins"
)

// ResultsHeader is the header row of the Results sheet.
var ResultsHeader = []string{
	"Trial", "Items", "Capacity", "Initial Temperature", "Cooling Rate", "Iterations",
	"Exact Bins", "Exact Optimal", "Anneal Bins", "Greedy Bins", "Gap (%)",
	"Exact Time (ms)", "Anneal Time (ms)", "Weights", "Anneal Assignment", "Exact Assignment",
	"Exact Error", "Run ID",
}

// WriteResultsXLSX writes one Results row per benchmark record plus a
// Summary sheet of aggregate statistics. The gap cell is left blank for
// trials where the exact solver failed.
func WriteResultsXLSX(path string, records []bench.Record, summary bench.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, ResultsSheet, 1, toCells(ResultsHeader)); err != nil {
		return err
	}
	if err := styleHeader(f, ResultsSheet, len(ResultsHeader), headerStyle); err != nil {
		return err
	}

	for i, rec := range records {
		var gap any = ""
		if rec.HasGap {
			gap = round(rec.GapPercent, 2)
		}
		var exactBins any = ""
		if rec.ExactError == "" {
			exactBins = rec.ExactBins
		}
		row := []any{
			rec.Trial,
			rec.Items,
			rec.Capacity,
			rec.InitialTemperature,
			rec.CoolingRate,
			rec.Iterations,
			exactBins,
			rec.ExactOptimal,
			rec.AnnealBins,
			rec.GreedyBins,
			gap,
			round(float64(rec.ExactTime.Microseconds())/1000.0, 3),
			round(float64(rec.AnnealTime.Microseconds())/1000.0, 3),
			formatFloats(rec.Weights),
			formatInts(rec.AnnealAssignment),
			formatInts(rec.ExactAssignment),
			rec.ExactError,
			rec.RunID,
		}
		if err := writeRow(f, ResultsSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(ResultsSheet, "A", "R", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summaryRows := [][]any{
		{"Metric", "Value"},
		{"Trials", summary.Trials},
		{"Trials With Exact Result", summary.WithExact},
		{"Proven Optimal", summary.ProvenOptimal},
		{"Matched Optimum", summary.MatchedOptimum},
		{"Match Rate (%)", round(summary.MatchRate, 2)},
		{"Mean Gap (%)", round(summary.Gap.Mean, 4)},
		{"Max Gap (%)", round(summary.Gap.Max, 4)},
		{"Mean Anneal Time (ms)", round(summary.AnnealTimeMs.Mean, 3)},
		{"Mean Exact Time (ms)", round(summary.ExactTimeMs.Mean, 3)},
		{"Mean Anneal Bins", round(summary.AnnealBins.Mean, 3)},
		{"Mean Exact Bins", round(summary.ExactBins.Mean, 3)},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := styleHeader(f, SummarySheet, 2, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteSolutionXLSX writes a single packing as a Bins sheet with one row per
// packed item, grouped by bin.
func WriteSolutionXLSX(path string, inst model.Instance, sol model.Solution) error {
	labels, err := CollectLabelInfos(inst, sol)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), BinsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := []any{"Bin", "Item", "Label", "Weight", "Bin Load", "Capacity"}
	if err := writeRow(f, BinsSheet, 1, header); err != nil {
		return err
	}
	for i, l := range labels {
		row := []any{l.Bin, l.Index, l.Label, l.Weight, l.BinLoad, l.Capacity}
		if err := writeRow(f, BinsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, cols, style int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func round(v float64, places int) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return f
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatInts(vals []int) string {
	if vals == nil {
		return ""
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
