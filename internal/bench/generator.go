package bench

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/binpack/internal/engine"
)

// GeneratorConfig describes how trial instances and schedules are drawn.
type GeneratorConfig struct {
	// Weights, when set, is used unchanged for every trial. Otherwise Items
	// weights are drawn uniformly from [MinWeight, MaxWeight].
	Weights   []float64
	Items     int
	MinWeight int
	MaxWeight int

	// Capacity is drawn uniformly from [CapacityMin, CapacityMax] and raised
	// to the heaviest weight if needed so every trial is feasible.
	CapacityMin int
	CapacityMax int

	// Schedule parameters are picked uniformly from these lists.
	Temperatures []float64
	CoolingRates []float64
	Iterations   []int
}

// DefaultGeneratorConfig reproduces the reference experiment: a fixed list of
// 15 weights, capacity in [50,100] and the four-way schedule grid.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Weights:      []float64{4, 7, 18, 14, 15, 5, 18, 6, 18, 10, 2, 1, 10, 11, 16},
		CapacityMin:  50,
		CapacityMax:  100,
		Temperatures: []float64{500, 1000, 1500, 2000},
		CoolingRates: []float64{0.95, 0.90, 0.85, 0.80},
		Iterations:   []int{100, 500, 5000, 10000},
	}
}

func (c GeneratorConfig) Validate() error {
	if len(c.Weights) == 0 {
		if c.Items <= 0 {
			return fmt.Errorf("items must be > 0 when no weights are given (got %d)", c.Items)
		}
		if c.MinWeight <= 0 || c.MaxWeight < c.MinWeight {
			return fmt.Errorf("invalid weight bounds [%d,%d]", c.MinWeight, c.MaxWeight)
		}
	}
	for i, w := range c.Weights {
		if !(w > 0) {
			return fmt.Errorf("weights[%d] must be > 0 (got %g)", i, w)
		}
	}
	if c.CapacityMin <= 0 || c.CapacityMax < c.CapacityMin {
		return fmt.Errorf("invalid capacity bounds [%d,%d]", c.CapacityMin, c.CapacityMax)
	}
	if len(c.Temperatures) == 0 || len(c.CoolingRates) == 0 || len(c.Iterations) == 0 {
		return fmt.Errorf("temperatures, cooling rates and iterations must each have at least one value")
	}
	return nil
}

// Trial is one generated instance with the schedule and seed to solve it with.
type Trial struct {
	Index    int
	Weights  []float64
	Capacity float64
	Config   engine.AnnealConfig
	Seed     int64
}

// Generator draws trials from a GeneratorConfig with its own random source.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

func NewGenerator(cfg GeneratorConfig, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}, nil
}

// Next draws trial index. The annealing seed is runSeed so that a trial's
// outcome does not depend on which worker runs it.
func (g *Generator) Next(index int, runSeed int64) Trial {
	weights := g.weights()

	capacity := float64(g.cfg.CapacityMin + g.rng.Intn(g.cfg.CapacityMax-g.cfg.CapacityMin+1))
	for _, w := range weights {
		if w > capacity {
			capacity = w
		}
	}

	cfg := engine.DefaultAnnealConfig()
	cfg.InitialTemperature = g.cfg.Temperatures[g.rng.Intn(len(g.cfg.Temperatures))]
	cfg.CoolingRate = g.cfg.CoolingRates[g.rng.Intn(len(g.cfg.CoolingRates))]
	cfg.MaxIterations = g.cfg.Iterations[g.rng.Intn(len(g.cfg.Iterations))]
	cfg.ReportInterval = 0

	return Trial{
		Index:    index,
		Weights:  weights,
		Capacity: capacity,
		Config:   cfg,
		Seed:     runSeed,
	}
}

func (g *Generator) weights() []float64 {
	if len(g.cfg.Weights) > 0 {
		out := make([]float64, len(g.cfg.Weights))
		copy(out, g.cfg.Weights)
		return out
	}
	out := make([]float64, g.cfg.Items)
	span := g.cfg.MaxWeight - g.cfg.MinWeight + 1
	for i := range out {
		out[i] = float64(g.cfg.MinWeight + g.rng.Intn(span))
	}
	return out
}
