package engine

import (
	"context"

	"github.com/piwi3910/binpack/internal/model"
)

// exactEngine holds the depth-first branch-and-bound search state.
// Items are visited heaviest first; w, assign and suffix are indexed by that
// sorted position, not by input position.
type exactEngine struct {
	ctx      context.Context
	capacity float64
	w        []float64 // Weights in decreasing order
	suffix   []float64 // suffix[k] = sum of w[k:]
	lower    int       // Admissible lower bound on the optimum

	loads  []float64 // Load of each open bin
	assign []int     // Bin of each sorted item on the current path

	best      []int
	bestCount int

	steps   int
	stopped bool
}

// SolveExact returns a packing with the minimum number of bins. It seeds the
// search with first-fit decreasing and stops as soon as it meets the lower
// bound max(ceil(sum/capacity), #items heavier than capacity/2).
//
// If ctx is cancelled mid-search the best packing found so far is returned
// with Optimal=false and a nil error.
func SolveExact(ctx context.Context, weights []float64, capacity float64) (model.Solution, error) {
	seed, err := FirstFitDecreasing(weights, capacity)
	if err != nil {
		return model.Solution{}, err
	}

	n := len(weights)
	order := decreasingOrder(weights)

	e := &exactEngine{
		ctx:       ctx,
		capacity:  capacity,
		w:         make([]float64, n),
		suffix:    make([]float64, n+1),
		assign:    make([]int, n),
		best:      make([]int, n),
		bestCount: seed.BinCount,
	}
	for k, i := range order {
		e.w[k] = weights[i]
		e.best[k] = seed.Assignment[i]
	}
	for k := n - 1; k >= 0; k-- {
		e.suffix[k] = e.suffix[k+1] + e.w[k]
	}
	e.lower = model.EstimateBins(e.w, capacity, 0).LowerBound

	if e.bestCount > e.lower {
		if ctx.Err() != nil {
			e.stopped = true
		} else {
			e.search(0)
		}
	}

	assignment := make([]int, n)
	for k, i := range order {
		assignment[i] = e.best[k]
	}
	return model.Solution{
		Assignment: assignment,
		BinCount:   e.bestCount,
		Optimal:    !e.stopped,
	}, nil
}

// deadlineCheck polls the context every 4096 nodes.
func (e *exactEngine) deadlineCheck() bool {
	e.steps++
	if e.steps&4095 != 0 {
		return e.stopped
	}
	if e.ctx.Err() != nil {
		e.stopped = true
	}
	return e.stopped
}

func (e *exactEngine) done() bool {
	return e.stopped || e.bestCount <= e.lower
}

func (e *exactEngine) search(k int) {
	if e.deadlineCheck() {
		return
	}

	open := len(e.loads)
	if k == len(e.w) {
		if open < e.bestCount {
			e.bestCount = open
			copy(e.best, e.assign)
		}
		return
	}

	// Free space in open bins can absorb part of the remaining weight; the
	// rest needs new bins.
	var used float64
	for _, l := range e.loads {
		used += l
	}
	free := float64(open)*e.capacity - used
	overflow := e.suffix[k] - free
	need := open
	if overflow > model.BinTolerance*e.capacity {
		need += model.CeilBins(overflow, e.capacity)
	}
	if need >= e.bestCount {
		return
	}

	w := e.w[k]
	tried := make([]float64, 0, open)
	for b := 0; b < open; b++ {
		if !model.Fits(e.loads[b]+w, e.capacity) {
			continue
		}
		// Bins with equal load are interchangeable.
		if containsLoad(tried, e.loads[b]) {
			continue
		}
		tried = append(tried, e.loads[b])

		prev := e.loads[b]
		e.loads[b] = prev + w
		e.assign[k] = b
		e.search(k + 1)
		e.loads[b] = prev
		if e.done() {
			return
		}
	}

	// Opening a new bin is only worth it if the result can still beat the incumbent.
	if open+1 < e.bestCount {
		e.loads = append(e.loads, w)
		e.assign[k] = open
		e.search(k + 1)
		e.loads = e.loads[:open]
	}
}

func containsLoad(loads []float64, l float64) bool {
	for _, x := range loads {
		if x == l {
			return true
		}
	}
	return false
}
