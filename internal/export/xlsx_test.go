package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/binpack/internal/bench"
)

func sampleRecords() []bench.Record {
	return []bench.Record{
		{
			RunID: "abcd1234", Trial: 1, Items: 3, Capacity: 10,
			InitialTemperature: 1000, CoolingRate: 0.95, Iterations: 100,
			AnnealBins: 2, AnnealTime: 1500 * time.Microsecond, AnnealAssignment: []int{0, 0, 1},
			ExactBins: 2, ExactOptimal: true, ExactTime: 250 * time.Microsecond, ExactAssignment: []int{0, 1, 0},
			GreedyBins: 2, GapPercent: 0, HasGap: true,
			Weights: []float64{4, 6, 3.5},
		},
		{
			RunID: "abcd1234", Trial: 2, Items: 2, Capacity: 5,
			InitialTemperature: 500, CoolingRate: 0.9, Iterations: 10,
			AnnealBins: 2, AnnealTime: time.Millisecond, AnnealAssignment: []int{1, 0},
			ExactError: "deadline exceeded",
			GreedyBins: 2,
			Weights:    []float64{3, 3},
		},
	}
}

func TestWriteResultsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	records := sampleRecords()

	require.NoError(t, WriteResultsXLSX(path, records, bench.Summarize(records)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResultsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ResultsHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "2", first[6], "exact bins")
	assert.Equal(t, "TRUE", first[7], "exact optimal")
	assert.Equal(t, "0", first[10], "gap")
	assert.Equal(t, "1.5", first[12], "anneal time in ms")
	assert.Equal(t, "[4, 6, 3.5]", first[13])
	assert.Equal(t, "[0, 0, 1]", first[14])
	assert.Equal(t, "abcd1234", first[17])

	second := rows[2]
	assert.Equal(t, "", second[6], "no exact bins after a failure")
	assert.Equal(t, "", second[10], "no gap after a failure")
	assert.Equal(t, "", second[15], "no exact assignment")
	assert.Equal(t, "deadline exceeded", second[16])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Trials", "2"}, summary[1])
	assert.Equal(t, []string{"Trials With Exact Result", "1"}, summary[2])
	assert.Equal(t, []string{"Match Rate (%)", "100"}, summary[5])
}

func TestWriteResultsXLSX_NoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteResultsXLSX(path, nil, bench.Summarize(nil)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestWriteSolutionXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bins.xlsx")
	inst, sol := buildTestPacking()

	require.NoError(t, WriteSolutionXLSX(path, inst, sol))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(BinsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, []string{"Bin", "Item", "Label", "Weight", "Bin Load", "Capacity"}, rows[0])
	assert.Equal(t, []string{"1", "1", "Crate", "4", "10", "10"}, rows[1])
	assert.Equal(t, []string{"3", "10", "Tin", "1", "3", "10"}, rows[10])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "[]", formatFloats(nil))
	assert.Equal(t, "[1, 2.25]", formatFloats([]float64{1, 2.25}))
	assert.Equal(t, "", formatInts(nil))
	assert.Equal(t, "[3, 0]", formatInts([]int{3, 0}))
	assert.Equal(t, 1.23, round(1.2345, 2))
}
