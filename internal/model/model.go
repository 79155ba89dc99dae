package model

import (
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// Item represents a piece of a given weight that must be packed.
// Quantity expands the item into that many identical entries when the
// instance is flattened into a weight list.
type Item struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
}

func NewItem(label string, weight float64, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Weight:   weight,
		Quantity: qty,
	}
}

// Instance is one bin-packing problem: a list of items and a shared bin capacity.
type Instance struct {
	Name     string  `json:"name"`
	Capacity float64 `json:"capacity"`
	Items    []Item  `json:"items"`
}

// NewInstanceFromWeights builds an instance with one item per weight.
// Items are labelled by their position in the input.
func NewInstanceFromWeights(weights []float64, capacity float64) Instance {
	items := make([]Item, len(weights))
	for i, w := range weights {
		items[i] = Item{
			ID:       uuid.New().String()[:8],
			Label:    itemLabel(i),
			Weight:   w,
			Quantity: 1,
		}
	}
	return Instance{Name: "Untitled", Capacity: capacity, Items: items}
}

// Weights flattens the item list into the ordered weight sequence the
// optimizers work on. Item i with quantity q contributes q consecutive entries.
func (in Instance) Weights() []float64 {
	var out []float64
	for _, it := range in.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		for k := 0; k < qty; k++ {
			out = append(out, it.Weight)
		}
	}
	return out
}

// Labels returns one label per flattened weight entry, aligned with Weights.
func (in Instance) Labels() []string {
	var out []string
	for _, it := range in.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		for k := 0; k < qty; k++ {
			out = append(out, it.Label)
		}
	}
	return out
}

// TotalWeight returns the sum of all flattened weights.
func (in Instance) TotalWeight() float64 {
	var total float64
	for _, w := range in.Weights() {
		total += w
	}
	return total
}

// LowerBound returns ceil(total weight / capacity), a bin count no feasible
// packing can go below. Returns 0 when capacity is not positive.
func (in Instance) LowerBound() int {
	return LowerBound(in.Weights(), in.Capacity)
}

// LowerBound returns ceil(sum(weights)/capacity).
func LowerBound(weights []float64, capacity float64) int {
	if capacity <= 0 {
		return 0
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	return CeilBins(total, capacity)
}

// BinTolerance is the relative slack allowed when turning a summed weight into
// a bin count. Fractional weights such as tenths do not add up exactly in
// float64, so 2.0000000000000004 bins must still count as 2.
const BinTolerance = 1e-9

// Fits reports whether a bin load stays within capacity, allowing rounding
// error below BinTolerance of a bin.
func Fits(load, capacity float64) bool {
	return load <= capacity+BinTolerance*capacity
}

// CeilBins returns the number of full bins needed to hold total weight,
// ignoring rounding error below BinTolerance of a bin.
func CeilBins(total, capacity float64) int {
	if capacity <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(total/capacity - BinTolerance))
}

// Solution is an assignment of every item to a bin id plus the number of
// bins holding positive weight. Assignment[i] is the bin of weight entry i.
type Solution struct {
	Assignment []int `json:"assignment"`
	BinCount   int   `json:"bin_count"`
	Optimal    bool  `json:"optimal,omitempty"` // Proven optimal (exact solver only)
}

// Bin groups the items that share a bin id in a solution.
type Bin struct {
	ID       int       `json:"id"`
	Items    []int     `json:"items"` // Indices into the flattened weight list
	Weights  []float64 `json:"weights"`
	Load     float64   `json:"load"`
	Capacity float64   `json:"capacity"`
}

// Fill returns the load as a percentage of capacity.
func (b Bin) Fill() float64 {
	if b.Capacity == 0 {
		return 0
	}
	return (b.Load / b.Capacity) * 100.0
}

// Free returns the unused capacity of the bin.
func (b Bin) Free() float64 {
	return b.Capacity - b.Load
}

// Bins groups the solution's items by bin id. Bins with no positive load
// are omitted. The result is ordered by bin id.
func (s Solution) Bins(weights []float64, capacity float64) []Bin {
	byID := make(map[int]*Bin)
	for i, id := range s.Assignment {
		if i >= len(weights) {
			break
		}
		b, ok := byID[id]
		if !ok {
			b = &Bin{ID: id, Capacity: capacity}
			byID[id] = b
		}
		b.Items = append(b.Items, i)
		b.Weights = append(b.Weights, weights[i])
		b.Load += weights[i]
	}

	bins := make([]Bin, 0, len(byID))
	for _, b := range byID {
		if b.Load > 0 {
			bins = append(bins, *b)
		}
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].ID < bins[j].ID })
	return bins
}

// Compact relabels bin ids to 0..k-1 in order of first appearance.
func (s Solution) Compact() Solution {
	remap := make(map[int]int)
	out := Solution{
		Assignment: make([]int, len(s.Assignment)),
		BinCount:   s.BinCount,
		Optimal:    s.Optimal,
	}
	for i, id := range s.Assignment {
		nid, ok := remap[id]
		if !ok {
			nid = len(remap)
			remap[id] = nid
		}
		out.Assignment[i] = nid
	}
	return out
}

// Efficiency returns the share of opened capacity actually used, in percent.
func (s Solution) Efficiency(weights []float64, capacity float64) float64 {
	if s.BinCount == 0 || capacity <= 0 {
		return 0
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	return total / (float64(s.BinCount) * capacity) * 100.0
}

// Project ties an instance, the settings used and the last result together
// for save/load.
type Project struct {
	Version   string    `json:"version"`
	CreatedAt string    `json:"created_at"`
	Instance  Instance  `json:"instance"`
	Config    AppConfig `json:"config"`
	Result    *Solution `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Version:  ProjectVersion,
		Instance: Instance{Name: "Untitled", Items: []Item{}},
		Config:   DefaultAppConfig(),
	}
}

// ProjectVersion is written into every saved project file.
const ProjectVersion = "1.0.0"

func itemLabel(i int) string {
	return "Item " + strconv.Itoa(i+1)
}
