package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/piwi3910/binpack/internal/model"
)

// Comparison holds the annealing result for one instance next to the exact
// optimum and the first-fit decreasing baseline.
type Comparison struct {
	Anneal     AnnealResult
	AnnealTime time.Duration

	Exact     model.Solution
	ExactTime time.Duration
	ExactErr  error

	Greedy model.Solution

	// GapPercent is (annealed - exact) / exact * 100. HasGap is false when the
	// exact solver failed.
	GapPercent float64
	HasGap     bool
}

// Compare runs the annealer with the given seed, then the exact solver under
// exactTimeout (0 = no limit), and reports the optimality gap. An error is
// returned only if the annealer itself fails; exact solver failures are
// recorded in ExactErr.
func Compare(ctx context.Context, weights []float64, capacity float64, cfg AnnealConfig, seed int64, exactTimeout time.Duration) (Comparison, error) {
	var cmp Comparison

	start := time.Now()
	res, err := Optimize(ctx, weights, capacity, cfg, seed, nil)
	cmp.AnnealTime = time.Since(start)
	if err != nil {
		return Comparison{}, err
	}
	cmp.Anneal = res

	cmp.Greedy, err = FirstFitDecreasing(weights, capacity)
	if err != nil {
		return Comparison{}, err
	}

	exactCtx := ctx
	cancel := func() {}
	if exactTimeout > 0 {
		exactCtx, cancel = context.WithTimeout(ctx, exactTimeout)
	}
	start = time.Now()
	cmp.Exact, cmp.ExactErr = SolveExact(exactCtx, weights, capacity)
	cmp.ExactTime = time.Since(start)
	cancel()

	if cmp.ExactErr == nil && cmp.Exact.BinCount > 0 {
		cmp.GapPercent = Gap(res.Solution.BinCount, cmp.Exact.BinCount)
		cmp.HasGap = true
	}
	return cmp, nil
}

// Gap returns the percentage by which got exceeds want.
func Gap(got, want int) float64 {
	if want == 0 {
		return 0
	}
	return float64(got-want) / float64(want) * 100
}

// Scenario is a named annealing configuration to compare against others.
type Scenario struct {
	Name   string
	Config AnnealConfig
}

// ScenarioResult holds the outcome of one scenario on a shared instance.
type ScenarioResult struct {
	Scenario Scenario
	Result   AnnealResult
	Err      error
}

// CompareScenarios runs every scenario on the same instance with the same
// seed and returns the results in scenario order. This shows how the
// schedule alone changes the outcome.
func CompareScenarios(ctx context.Context, weights []float64, capacity float64, scenarios []Scenario, seed int64) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := Optimize(ctx, weights, capacity, sc.Config, seed, nil)
		results = append(results, ScenarioResult{Scenario: sc, Result: res, Err: err})
	}
	return results
}

// BuildDefaultScenarios derives what-if variations of base: slower and faster
// cooling, and a larger iteration budget.
func BuildDefaultScenarios(base AnnealConfig) []Scenario {
	scenarios := []Scenario{
		{Name: "Current Settings", Config: base},
	}

	slower := base
	slower.CoolingRate = 1 - (1-base.CoolingRate)/2
	scenarios = append(scenarios, Scenario{
		Name:   fmt.Sprintf("Slower Cooling (%.4f)", slower.CoolingRate),
		Config: slower,
	})

	faster := base
	faster.CoolingRate = base.CoolingRate * base.CoolingRate
	scenarios = append(scenarios, Scenario{
		Name:   fmt.Sprintf("Faster Cooling (%.4f)", faster.CoolingRate),
		Config: faster,
	})

	if base.MaxIterations > 0 {
		longer := base
		longer.MaxIterations = base.MaxIterations * 10
		scenarios = append(scenarios, Scenario{
			Name:   fmt.Sprintf("%d Iterations", longer.MaxIterations),
			Config: longer,
		})
	}

	return scenarios
}
