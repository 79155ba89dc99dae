package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/piwi3910/binpack/internal/model"
)

// ProgressFunc receives the best bin count found so far and the current
// temperature every AnnealConfig.ReportInterval iterations.
type ProgressFunc func(iteration, bestCost int, temperature float64)

// AnnealResult holds the best packing found by a run together with search
// statistics.
type AnnealResult struct {
	Solution          model.Solution
	InitialCost       int
	Iterations        int // Iterations actually executed
	Accepted          int // Moves taken (improving, lateral or uphill)
	Rejected          int // Feasible moves refused by the Metropolis test
	Skipped           int // Moves discarded for violating capacity
	BootstrapAttempts int
	FallbackSeeded    bool // Start came from one item per bin, not from sampling
	FinalTemperature  float64
	Stopped           bool // Context was cancelled before the budget ran out
	Duration          time.Duration
}

// Annealer packs a fixed weight list into bins of a fixed capacity using
// simulated annealing. An Annealer owns its random source and scratch
// buffers, so it must not be shared between goroutines; independent
// Annealers may run concurrently.
type Annealer struct {
	weights  []float64
	capacity float64
	rng      *rand.Rand
	loads    []float64 // Per-bin weight, rebuilt on every evaluation
}

// NewAnnealer validates the instance and returns an optimizer bound to rng.
func NewAnnealer(weights []float64, capacity float64, rng *rand.Rand) (*Annealer, error) {
	if err := validateInstance(weights, capacity); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidParameter)
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Annealer{
		weights:  w,
		capacity: capacity,
		rng:      rng,
		loads:    make([]float64, len(w)),
	}, nil
}

// Optimize packs weights into bins of the given capacity and returns the best
// assignment found. The run is reproducible for a given seed.
func Optimize(ctx context.Context, weights []float64, capacity float64, cfg AnnealConfig, seed int64, progress ProgressFunc) (AnnealResult, error) {
	if err := cfg.Validate(); err != nil {
		return AnnealResult{}, err
	}
	a, err := NewAnnealer(weights, capacity, rand.New(rand.NewSource(seed)))
	if err != nil {
		return AnnealResult{}, err
	}
	return a.Optimize(ctx, cfg, progress)
}

// Optimize runs the annealing loop. Each iteration moves one random item to a
// random bin id in [0,n), skips the move if it overfills a bin, and otherwise
// applies the Metropolis rule. Temperature cools once per iteration whether or
// not the move was taken.
//
// Cancelling ctx ends the loop early; the best packing so far is returned
// with Stopped set and a nil error.
func (a *Annealer) Optimize(ctx context.Context, cfg AnnealConfig, progress ProgressFunc) (AnnealResult, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return AnnealResult{}, err
	}

	current, attempts, fallback, err := a.bootstrap(cfg)
	if err != nil {
		return AnnealResult{}, err
	}

	n := len(a.weights)
	currentCost := a.cost(current)
	best := make([]int, n)
	copy(best, current)
	bestCost := currentCost
	neighbor := make([]int, n)

	res := AnnealResult{
		InitialCost:       currentCost,
		BootstrapAttempts: attempts,
		FallbackSeeded:    fallback,
	}

	temperature := cfg.InitialTemperature
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if ctx.Err() != nil {
			res.Stopped = true
			break
		}

		a.neighborOf(current, neighbor)

		if !a.isValid(neighbor) {
			res.Skipped++
		} else {
			neighborCost := a.cost(neighbor)
			switch {
			case neighborCost < currentCost:
				current, neighbor = neighbor, current
				currentCost = neighborCost
				res.Accepted++
				if currentCost < bestCost {
					bestCost = currentCost
					copy(best, current)
				}
			case a.accept(neighborCost-currentCost, temperature):
				current, neighbor = neighbor, current
				currentCost = neighborCost
				res.Accepted++
			default:
				res.Rejected++
			}
		}

		temperature *= cfg.CoolingRate
		res.Iterations = iter + 1

		if progress != nil && cfg.ReportInterval > 0 && iter%cfg.ReportInterval == 0 {
			progress(iter, bestCost, temperature)
		}
	}

	res.Solution = model.Solution{Assignment: best, BinCount: bestCost}
	res.FinalTemperature = temperature
	res.Duration = time.Since(start)
	return res, nil
}

// bootstrap samples uniform random assignments until one is feasible. When the
// attempt budget runs out it falls back to one item per bin, which is always
// feasible once every weight fits the capacity.
func (a *Annealer) bootstrap(cfg AnnealConfig) ([]int, int, bool, error) {
	n := len(a.weights)
	sol := make([]int, n)
	limit := cfg.bootstrapAttempts()

	for attempt := 1; attempt <= limit; attempt++ {
		for i := range sol {
			sol[i] = a.rng.Intn(n)
		}
		if a.isValid(sol) {
			return sol, attempt, false, nil
		}
	}

	if cfg.StrictBootstrap {
		return nil, limit, false, fmt.Errorf("%w: no feasible assignment in %d samples", ErrBootstrapNonConvergence, limit)
	}
	for i := range sol {
		sol[i] = i
	}
	return sol, limit, true, nil
}

// neighborOf copies src into dst and reassigns one random item to a random
// bin id. The new id may equal the old one.
func (a *Annealer) neighborOf(src, dst []int) {
	copy(dst, src)
	n := len(a.weights)
	item := a.rng.Intn(n)
	dst[item] = a.rng.Intn(n)
}

// accept draws one uniform number and compares it to the Metropolis
// probability for a cost increase of delta.
func (a *Annealer) accept(delta int, temperature float64) bool {
	return a.rng.Float64() < acceptanceProbability(delta, temperature)
}

// acceptanceProbability returns exp(-delta/T). Lateral moves (delta <= 0) are
// always taken; once T has underflowed to zero no uphill move is.
func acceptanceProbability(delta int, temperature float64) float64 {
	if delta <= 0 {
		return 1
	}
	if temperature <= 0 {
		return 0
	}
	return math.Exp(-float64(delta) / temperature)
}

// isValid reports whether every bin id is in range and no bin exceeds capacity.
func (a *Annealer) isValid(sol []int) bool {
	for b := range a.loads {
		a.loads[b] = 0
	}
	for i, b := range sol {
		if b < 0 || b >= len(a.loads) {
			return false
		}
		a.loads[b] += a.weights[i]
		if !model.Fits(a.loads[b], a.capacity) {
			return false
		}
	}
	return true
}

// cost returns the number of bins holding positive weight.
func (a *Annealer) cost(sol []int) int {
	for b := range a.loads {
		a.loads[b] = 0
	}
	for i, b := range sol {
		a.loads[b] += a.weights[i]
	}
	used := 0
	for _, l := range a.loads {
		if l > 0 {
			used++
		}
	}
	return used
}
