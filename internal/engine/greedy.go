package engine

import (
	"sort"

	"github.com/piwi3910/binpack/internal/model"
)

// decreasingOrder returns item indices sorted by weight, heaviest first.
// Ties keep input order so results are deterministic.
func decreasingOrder(weights []float64) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	return order
}

// FirstFitDecreasing packs items heaviest first, each into the first open bin
// with room, opening a new bin when none fits. It never uses more than
// 11/9*OPT+6/9 bins and serves as the exact solver's starting upper bound.
func FirstFitDecreasing(weights []float64, capacity float64) (model.Solution, error) {
	if err := validateInstance(weights, capacity); err != nil {
		return model.Solution{}, err
	}

	assignment := make([]int, len(weights))
	var loads []float64

	for _, i := range decreasingOrder(weights) {
		w := weights[i]
		placed := false
		for b := range loads {
			if model.Fits(loads[b]+w, capacity) {
				loads[b] += w
				assignment[i] = b
				placed = true
				break
			}
		}
		if !placed {
			assignment[i] = len(loads)
			loads = append(loads, w)
		}
	}

	return model.Solution{Assignment: assignment, BinCount: len(loads)}, nil
}
