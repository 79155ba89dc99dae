package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	it := NewItem("Crate", 4, 2)
	assert.Len(t, it.ID, 8)
	assert.Equal(t, "Crate", it.Label)
	assert.Equal(t, 4.0, it.Weight)
	assert.Equal(t, 2, it.Quantity)
}

func TestNewInstanceFromWeights(t *testing.T) {
	inst := NewInstanceFromWeights([]float64{4, 8, 1}, 10)
	require.Len(t, inst.Items, 3)
	assert.Equal(t, 10.0, inst.Capacity)
	assert.Equal(t, "Item 1", inst.Items[0].Label)
	assert.Equal(t, "Item 3", inst.Items[2].Label)
	assert.Equal(t, []float64{4, 8, 1}, inst.Weights())
}

func TestInstanceWeightsExpandsQuantity(t *testing.T) {
	inst := Instance{
		Capacity: 10,
		Items: []Item{
			{Label: "A", Weight: 4, Quantity: 2},
			{Label: "B", Weight: 3, Quantity: 0}, // treated as one
			{Label: "C", Weight: 1, Quantity: 3},
		},
	}
	assert.Equal(t, []float64{4, 4, 3, 1, 1, 1}, inst.Weights())
	assert.Equal(t, []string{"A", "A", "B", "C", "C", "C"}, inst.Labels())
	assert.Equal(t, 14.0, inst.TotalWeight())
	assert.Equal(t, 2, inst.LowerBound())
}

func TestLowerBound(t *testing.T) {
	assert.Equal(t, 3, LowerBound([]float64{4, 8, 1, 4, 2, 1, 3, 2, 1, 2}, 10))
	assert.Equal(t, 1, LowerBound([]float64{10}, 10))
	assert.Equal(t, 0, LowerBound([]float64{1}, 0))
	assert.Equal(t, 0, LowerBound(nil, 10))

	// Tenths sum to 2.0000000000000004 in float64.
	assert.Equal(t, 2, LowerBound([]float64{0.4, 0.3, 0.2, 0.3, 0.5, 0.3}, 1))
	assert.Equal(t, 3, LowerBound([]float64{0.4, 0.3, 0.2, 0.3, 0.5, 0.3, 0.1}, 1))
}

func TestCeilBinsAndFits(t *testing.T) {
	assert.Equal(t, 2, CeilBins(2.0000000000000004, 1))
	assert.Equal(t, 3, CeilBins(2.001, 1))
	assert.Equal(t, 1, CeilBins(1e-6, 1))
	assert.Equal(t, 0, CeilBins(0, 1))

	assert.True(t, Fits(1.0000000000000002, 1))
	assert.True(t, Fits(10, 10))
	assert.False(t, Fits(10.001, 10))
}

func TestSolutionBins(t *testing.T) {
	weights := []float64{4, 3, 2, 5}
	sol := Solution{Assignment: []int{7, 2, 7, 2}, BinCount: 2}

	bins := sol.Bins(weights, 10)
	require.Len(t, bins, 2)

	assert.Equal(t, 2, bins[0].ID, "ordered by bin id")
	assert.Equal(t, []int{1, 3}, bins[0].Items)
	assert.Equal(t, []float64{3, 5}, bins[0].Weights)
	assert.Equal(t, 8.0, bins[0].Load)
	assert.Equal(t, 2.0, bins[0].Free())
	assert.InDelta(t, 80.0, bins[0].Fill(), 1e-9)

	assert.Equal(t, 7, bins[1].ID)
	assert.Equal(t, []int{0, 2}, bins[1].Items)
	assert.Equal(t, 6.0, bins[1].Load)
}

func TestSolutionCompact(t *testing.T) {
	sol := Solution{Assignment: []int{5, 2, 5, 9}, BinCount: 3, Optimal: true}
	c := sol.Compact()

	assert.Equal(t, []int{0, 1, 0, 2}, c.Assignment)
	assert.Equal(t, 3, c.BinCount)
	assert.True(t, c.Optimal)
	assert.Equal(t, []int{5, 2, 5, 9}, sol.Assignment, "original untouched")

	// After compaction, exports number bins by first appearance.
	weights := []float64{4, 3, 2, 5}
	bins := Solution{Assignment: []int{7, 2, 7, 2}, BinCount: 2}.Compact().Bins(weights, 10)
	require.Len(t, bins, 2)
	assert.Equal(t, []int{0, 2}, bins[0].Items)
	assert.Equal(t, []int{1, 3}, bins[1].Items)
}

func TestSolutionEfficiency(t *testing.T) {
	sol := Solution{Assignment: []int{0, 0, 1}, BinCount: 2}
	assert.InDelta(t, 75.0, sol.Efficiency([]float64{5, 5, 5}, 10), 1e-9)
	assert.Equal(t, 0.0, Solution{}.Efficiency([]float64{1}, 10))
}

func TestBinFillZeroCapacity(t *testing.T) {
	assert.Equal(t, 0.0, Bin{Load: 5}.Fill())
}

func TestNewProject(t *testing.T) {
	p := NewProject()
	assert.Equal(t, ProjectVersion, p.Version)
	assert.NotNil(t, p.Instance.Items)
	assert.Nil(t, p.Result)
	assert.Equal(t, DefaultAppConfig().DefaultCoolingRate, p.Config.DefaultCoolingRate)
}
